// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"io"
)

//go:generate mockgen -write_generate_directive -source batch.go -destination modelmocks/batch.go -package modelmocks

const (
	// CommandFailureContinue reports a failed command and moves on to the next step
	CommandFailureContinue = "continue"
	// CommandFailureStop reports a failed command and stops the batch
	CommandFailureStop = "stop"

	// PathFailureAbort reports an unusable directory and aborts the batch
	PathFailureAbort = "abort"
	// PathFailureContinue reports an unusable directory and moves on to the next step
	PathFailureContinue = "continue"
)

// Batch is an ordered list of steps with the data and policy they run under
type Batch interface {
	// Source names where the batch came from, a file or a preset
	Source() string
	// Checksum is the sha256 of the parsed batch, used to detect changes between resumed runs
	Checksum() string
	Steps() []*StepProperties
	Data() map[string]any
	Policy() FailurePolicy
	Execute(ctx context.Context, mgr Manager, out io.Writer, opts ExecuteOptions) (SessionStore, error)
}

// ExecuteOptions adjusts a single execution of a batch
type ExecuteOptions struct {
	// Resume skips steps whose latest event in the session store succeeded
	Resume bool
}

// FailurePolicy decides how a batch reacts to failed steps
type FailurePolicy struct {
	CommandFailure string `json:"command_failure,omitempty" yaml:"command_failure,omitempty"`
	PathFailure    string `json:"path_failure,omitempty" yaml:"path_failure,omitempty"`
}

// DefaultFailurePolicy continues after failed commands and aborts on missing directories
func DefaultFailurePolicy() FailurePolicy {
	return FailurePolicy{
		CommandFailure: CommandFailureContinue,
		PathFailure:    PathFailureAbort,
	}
}

// WithDefaults returns a copy of the policy with unset values set to their defaults
func (p FailurePolicy) WithDefaults() FailurePolicy {
	def := DefaultFailurePolicy()

	if p.CommandFailure == "" {
		p.CommandFailure = def.CommandFailure
	}
	if p.PathFailure == "" {
		p.PathFailure = def.PathFailure
	}

	return p
}

// Validate ensures the policy values are known
func (p FailurePolicy) Validate() error {
	switch p.CommandFailure {
	case "", CommandFailureContinue, CommandFailureStop:
	default:
		return fmt.Errorf("%w: command_failure must be %s or %s", ErrInvalidPolicy, CommandFailureContinue, CommandFailureStop)
	}

	switch p.PathFailure {
	case "", PathFailureAbort, PathFailureContinue:
	default:
		return fmt.Errorf("%w: path_failure must be %s or %s", ErrInvalidPolicy, PathFailureAbort, PathFailureContinue)
	}

	return nil
}

// StopOnCommandFailure indicates a failed command ends the batch
func (p FailurePolicy) StopOnCommandFailure() bool {
	return p.WithDefaults().CommandFailure == CommandFailureStop
}

// AbortOnPathFailure indicates an unusable directory ends the batch
func (p FailurePolicy) AbortOnPathFailure() bool {
	return p.WithDefaults().PathFailure == PathFailureAbort
}
