// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/choria-io/fisk"
	"github.com/goccy/go-yaml"

	"github.com/choria-io/bootstrap/templates"
)

// StepProperties describes one command to run in a directory relative to the root
type StepProperties struct {
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Command     string   `json:"command" yaml:"command"`
	Directory   string   `json:"directory" yaml:"directory"`
	Provider    string   `json:"provider,omitempty" yaml:"provider,omitempty"`
	Environment []string `json:"environment,omitempty" yaml:"environment,omitempty"`
	Timeout     string   `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Retries     int      `json:"retries,omitempty" yaml:"retries,omitempty"`
	If          string   `json:"if,omitempty" yaml:"if,omitempty"`
	Unless      string   `json:"unless,omitempty" yaml:"unless,omitempty"`

	ParsedTimeout time.Duration `json:"-" yaml:"-"`
	SkipValidate  bool          `json:"-" yaml:"-"`
}

// StepName is the name used in logs and sessions, the command when no name is set
func (p *StepProperties) StepName() string {
	if p.Name != "" {
		return p.Name
	}

	return p.Command
}

// DisplayDirectory is the directory as written in the batch, an empty directory means the root
func (p *StepProperties) DisplayDirectory() string {
	if p.Directory == "" {
		return "./"
	}

	return p.Directory
}

// Validate validates the step properties
func (p *StepProperties) Validate() error {
	if p.SkipValidate {
		return nil
	}

	if strings.TrimSpace(p.Command) == "" {
		return fmt.Errorf("%w: %w", ErrStepInvalid, ErrCommandRequired)
	}

	if p.Retries < 0 {
		return fmt.Errorf("%w: %w", ErrStepInvalid, ErrInvalidRetries)
	}

	for _, e := range p.Environment {
		k, _, ok := strings.Cut(e, "=")
		if !ok || k == "" {
			return fmt.Errorf("%w: %w: %q", ErrStepInvalid, ErrInvalidEnvironment, e)
		}
	}

	if p.Timeout != "" {
		var err error
		p.ParsedTimeout, err = fisk.ParseDuration(p.Timeout)
		if err != nil {
			return fmt.Errorf("%w: invalid timeout: %w", ErrStepInvalid, err)
		}
	}

	return nil
}

// ResolveTemplates resolves template expressions in the step, conditions are evaluated separately
func (p *StepProperties) ResolveTemplates(env *templates.Env) error {
	val, err := templates.ResolveTemplateString(p.Name, env)
	if err != nil {
		return err
	}
	p.Name = val

	val, err = templates.ResolveTemplateString(p.Command, env)
	if err != nil {
		return err
	}
	p.Command = val

	val, err = templates.ResolveTemplateString(p.Directory, env)
	if err != nil {
		return err
	}
	p.Directory = val

	for i, e := range p.Environment {
		val, err = templates.ResolveTemplateString(e, env)
		if err != nil {
			return err
		}
		p.Environment[i] = val
	}

	return nil
}

// ResolveDirectory joins the step directory to root and checks it is an existing directory
func (p *StepProperties) ResolveDirectory(root string) (string, error) {
	if !filepath.IsAbs(root) {
		return "", fmt.Errorf("%w: %s", ErrRootNotAbsolute, root)
	}

	resolved := p.Directory
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(root, resolved)
	}
	resolved = filepath.Clean(resolved)

	stat, err := os.Stat(resolved)
	if err != nil {
		return resolved, &PathError{Directory: p.DisplayDirectory(), Resolved: resolved, Err: err}
	}

	if !stat.IsDir() {
		return resolved, &PathError{Directory: p.DisplayDirectory(), Resolved: resolved, Err: fmt.Errorf("not a directory")}
	}

	return resolved, nil
}

// Clone returns a copy of the properties that can be resolved without affecting the original
func (p *StepProperties) Clone() *StepProperties {
	np := *p
	np.Environment = append([]string(nil), p.Environment...)

	return &np
}

// ToYamlManifest returns the step as a yaml document
func (p *StepProperties) ToYamlManifest() (yaml.RawMessage, error) {
	return yaml.Marshal(p)
}

// NewStepPropertiesFromYaml creates step properties from a yaml document, does not validate or expand templates
func NewStepPropertiesFromYaml(raw yaml.RawMessage) (*StepProperties, error) {
	prop := &StepProperties{}
	err := yaml.Unmarshal(raw, prop)
	if err != nil {
		return nil, err
	}

	return prop, nil
}
