// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/choria-io/bootstrap/hiera"
	iu "github.com/choria-io/bootstrap/internal/util"
	"github.com/choria-io/bootstrap/model"
	"github.com/choria-io/bootstrap/templates"
)

// Batch is a parsed and validated list of steps ready for execution
type Batch struct {
	source   string
	checksum string
	steps    []*model.StepProperties
	data     map[string]any
	policy   model.FailurePolicy

	overridingData map[string]any
	policyOverride model.FailurePolicy

	mu sync.Mutex
}

var _ model.Batch = (*Batch)(nil)

// document is the shape of a batch file, data is resolved separately through the hierarchy
type document struct {
	Policy model.FailurePolicy     `json:"policy" yaml:"policy"`
	Steps  []*model.StepProperties `json:"steps" yaml:"steps"`
}

func (b *Batch) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(b.toMap())
}

func (b *Batch) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.toMap())
}

func (b *Batch) toMap() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()

	return map[string]any{
		"source":   b.source,
		"checksum": b.checksum,
		"data":     b.data,
		"policy":   b.policy,
		"steps":    b.steps,
	}
}

// Source is the file or preset the batch was read from
func (b *Batch) Source() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.source
}

// Checksum is the sha256 of the batch document after rendering
func (b *Batch) Checksum() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.checksum
}

// Steps returns the steps in execution order
func (b *Batch) Steps() []*model.StepProperties {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.steps
}

// Data returns the resolved batch data
func (b *Batch) Data() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.data
}

// Policy returns the failure policy with defaults applied
func (b *Batch) Policy() model.FailurePolicy {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.policy.WithDefaults()
}

// ResolveFile reads a batch file, files ending in .jet are rendered with Jet first
func ResolveFile(ctx context.Context, mgr model.Manager, file string, opts ...Option) (*Batch, error) {
	body, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(file, ".jet") {
		env, err := mgr.TemplateEnvironment(ctx)
		if err != nil {
			return nil, err
		}

		body, err = templates.RenderJet(filepath.Base(file), body, env)
		if err != nil {
			return nil, fmt.Errorf("could not render %s: %w", file, err)
		}
	}

	return ResolveBatch(ctx, mgr, file, body, opts...)
}

// ResolveReader reads a batch from r
func ResolveReader(ctx context.Context, mgr model.Manager, source string, r io.Reader, opts ...Option) (*Batch, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return ResolveBatch(ctx, mgr, source, body, opts...)
}

// ResolvePreset resolves one of the built in batches
func ResolvePreset(ctx context.Context, mgr model.Manager, name string, opts ...Option) (*Batch, error) {
	body, err := Preset(name)
	if err != nil {
		return nil, err
	}

	return ResolveBatch(ctx, mgr, "preset:"+name, body, opts...)
}

// ResolveBatch validates a batch document, resolves its data using the hierarchy and stores the data in the manager
func ResolveBatch(ctx context.Context, mgr model.Manager, source string, body []byte, opts ...Option) (*Batch, error) {
	b := &Batch{source: source}

	for _, opt := range opts {
		err := opt(b)
		if err != nil {
			return nil, err
		}
	}

	err := ValidateDocument(body)
	if err != nil {
		return nil, fmt.Errorf("invalid batch %s: %w", source, err)
	}

	b.checksum = iu.Checksum(body)

	var raw map[string]any
	err = yaml.Unmarshal(body, &raw)
	if err != nil {
		return nil, fmt.Errorf("invalid batch %s: %w", source, err)
	}

	var doc document
	err = yaml.Unmarshal(body, &doc)
	if err != nil {
		return nil, fmt.Errorf("invalid batch %s: %w", source, err)
	}

	facts, err := mgr.Facts(ctx)
	if err != nil {
		return nil, err
	}

	log, err := mgr.Logger("component", "batch")
	if err != nil {
		return nil, err
	}

	data, err := hiera.Resolve(raw, facts, hiera.DefaultOptions, log)
	if err != nil {
		return nil, fmt.Errorf("invalid batch %s: %w", source, err)
	}

	if len(b.overridingData) > 0 {
		data = iu.DeepMergeMap(data, b.overridingData)
	}

	b.data = mgr.SetData(data)

	b.policy = doc.Policy
	if b.policyOverride.CommandFailure != "" {
		b.policy.CommandFailure = b.policyOverride.CommandFailure
	}
	if b.policyOverride.PathFailure != "" {
		b.policy.PathFailure = b.policyOverride.PathFailure
	}

	err = b.policy.Validate()
	if err != nil {
		return nil, err
	}

	for i, step := range doc.Steps {
		if step == nil {
			return nil, fmt.Errorf("invalid batch %s: step %d is empty", source, i)
		}
	}
	b.steps = doc.Steps

	log.Debug("Resolved batch", "source", source, "steps", len(b.steps), "checksum", b.checksum)

	return b, nil
}
