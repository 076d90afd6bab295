// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package step

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/choria-io/bootstrap/internal/backoff"
	"github.com/choria-io/bootstrap/internal/registry"
	"github.com/choria-io/bootstrap/metrics"
	"github.com/choria-io/bootstrap/model"
	"github.com/choria-io/bootstrap/templates"
)

// Step is a single resolved command ready to run in a directory below the root
type Step struct {
	index    int
	prop     *model.StepProperties
	mgr      model.Manager
	log      model.Logger
	env      *templates.Env
	provider model.StepProvider
	retry    backoff.Policy

	mu sync.Mutex
}

// New resolves templates in a copy of properties and validates the result
func New(ctx context.Context, mgr model.Manager, index int, properties *model.StepProperties) (*Step, error) {
	env, err := mgr.TemplateEnvironment(ctx)
	if err != nil {
		return nil, err
	}

	prop := properties.Clone()
	err = prop.ResolveTemplates(env)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrStepInvalid, err)
	}

	logger, err := mgr.Logger("step", index, "name", prop.StepName())
	if err != nil {
		return nil, err
	}

	s := &Step{
		index: index,
		prop:  prop,
		mgr:   mgr,
		log:   logger,
		env:   env,
		retry: backoff.FiveSec,
	}

	err = prop.Validate()
	if err != nil {
		return nil, err
	}

	s.log.Debug("Created step instance")

	return s, nil
}

// Properties are the resolved step properties
func (s *Step) Properties() *model.StepProperties {
	return s.prop
}

// Index is the position of the step in its batch
func (s *Step) Index() int {
	return s.index
}

func (s *Step) String() string {
	return fmt.Sprintf("step #%d %s", s.index, s.prop.StepName())
}

// SetRetryPolicy sets the back-off used between attempts
func (s *Step) SetRetryPolicy(p backoff.Policy) {
	s.mu.Lock()
	s.retry = p
	s.mu.Unlock()
}

// ShouldRun evaluates the if and unless conditions, reason explains a false result
func (s *Step) ShouldRun() (bool, string, error) {
	if s.prop.If != "" {
		ok, err := templates.ResolveCondition(s.prop.If, s.env)
		if err != nil {
			return false, "", fmt.Errorf("if condition: %w", err)
		}
		if !ok {
			return false, fmt.Sprintf("if condition %q is false", s.prop.If), nil
		}
	}

	if s.prop.Unless != "" {
		ok, err := templates.ResolveCondition(s.prop.Unless, s.env)
		if err != nil {
			return false, "", fmt.Errorf("unless condition: %w", err)
		}
		if ok {
			return false, fmt.Sprintf("unless condition %q is true", s.prop.Unless), nil
		}
	}

	return true, "", nil
}

// Apply runs the step and returns its event, a failed step also returns a *model.CommandError or *model.PathError
func (s *Step) Apply(ctx context.Context) (*model.StepEvent, error) {
	event := model.NewStepEvent(s.index, s.prop)
	start := time.Now()
	defer func() {
		event.Duration = time.Since(start)
	}()

	run, reason, err := s.ShouldRun()
	if err != nil {
		return s.stepFailure(event, err)
	}
	if !run {
		s.log.Info("Skipping step", "reason", reason)
		event.Skipped = true
		event.SkipReason = reason
		return event, nil
	}

	resolved, err := s.prop.ResolveDirectory(s.mgr.Root())
	event.Resolved = resolved
	if err != nil {
		event.Failed = true
		event.ErrorKind = model.ErrorKindPath
		event.Error = err.Error()
		return event, err
	}

	provider, err := s.selectProvider(ctx)
	if err != nil {
		return s.stepFailure(event, err)
	}
	event.Provider = provider.Name()

	timer := prometheus.NewTimer(metrics.StepRunTime.WithLabelValues(event.Provider, event.MetricLabel()))
	res, attempts, err := s.execute(ctx, provider, resolved)
	timer.ObserveDuration()

	event.Attempts = attempts

	if res != nil {
		event.Stdout = string(res.Stdout)
		event.Stderr = string(res.Stderr)
		event.ExitCode = res.ExitCode
	}

	switch {
	case err != nil:
		// the command could not be started or was interrupted, report it like any other failed command
		event.ExitCode = -1
		cerr := &model.CommandError{Command: s.prop.Command, Directory: s.prop.DisplayDirectory(), ExitCode: -1, Stderr: event.Stderr}
		if cerr.Stderr == "" {
			cerr.Stderr = err.Error()
		}
		event.Failed = true
		event.ErrorKind = model.ErrorKindCommand
		event.Error = err.Error()
		return event, errors.Join(cerr, err)

	case res.ExitCode != 0:
		cerr := &model.CommandError{Command: s.prop.Command, Directory: s.prop.DisplayDirectory(), ExitCode: res.ExitCode, Stderr: event.Stderr}
		event.Failed = true
		event.ErrorKind = model.ErrorKindCommand
		event.Error = cerr.Error()
		return event, cerr
	}

	return event, nil
}

func (s *Step) stepFailure(event *model.StepEvent, err error) (*model.StepEvent, error) {
	event.Failed = true
	event.ErrorKind = model.ErrorKindStep
	event.Error = err.Error()

	return event, err
}

// execute runs the command up to retries+1 times, stopping at the first zero exit code
func (s *Step) execute(ctx context.Context, provider model.StepProvider, cwd string) (*model.ExecResult, int, error) {
	var (
		res      *model.ExecResult
		err      error
		attempts int
	)

	s.mu.Lock()
	policy := s.retry
	s.mu.Unlock()

	for attempts < s.prop.Retries+1 {
		if attempts > 0 {
			s.log.Warn("Retrying failed command", "attempt", attempts+1, "exitcode", res.ExitCode)
			if serr := policy.TrySleep(ctx, attempts-1); serr != nil {
				return res, attempts, serr
			}
		}

		attempts++
		res, err = provider.Execute(ctx, s.prop, cwd)
		if err != nil {
			return res, attempts, err
		}

		s.log.Debug("Command completed", "attempt", attempts, "exitcode", res.ExitCode)

		if res.ExitCode == 0 {
			break
		}
	}

	return res, attempts, nil
}

func (s *Step) selectProvider(ctx context.Context) (model.StepProvider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.provider != nil {
		return s.provider, nil
	}

	facts, err := s.mgr.Facts(ctx)
	if err != nil {
		return nil, err
	}

	runner, err := s.mgr.NewRunner()
	if err != nil {
		return nil, err
	}

	selected, err := registry.FindSuitableProvider(s.prop.Provider, facts, s.log, runner)
	if err != nil {
		return nil, err
	}

	if selected == nil {
		return nil, model.ErrNoSuitableProvider
	}

	s.log.Debug("Selected provider", "provider", selected.Name())
	s.provider = selected

	return selected, nil
}
