// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrStepInvalid           = errors.New("invalid step")
	ErrCommandRequired       = errors.New("command is required")
	ErrInvalidPolicy         = errors.New("invalid failure policy")
	ErrInvalidRetries        = errors.New("retries must be 0 or more")
	ErrInvalidEnvironment    = errors.New("environment entries must be KEY=VALUE")
	ErrCommandFailed         = errors.New("command failed")
	ErrInvalidDirectory      = errors.New("invalid directory")
	ErrBatchAborted          = errors.New("batch aborted")
	ErrRootNotAbsolute       = errors.New("root path must be absolute")
	ErrProviderNotFound      = errors.New("provider not found")
	ErrProviderNotManageable = errors.New("provider is not manageable")
	ErrNoSuitableProvider    = errors.New("no suitable provider found")
	ErrDuplicateProvider     = errors.New("provider already exists")
)

// CommandError is returned when a step command terminated with a non-zero exit status
type CommandError struct {
	Command   string
	Directory string
	ExitCode  int
	Stderr    string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: '%s' in %s exited with code %d", ErrCommandFailed, e.Command, e.Directory, e.ExitCode)
}

func (e *CommandError) Unwrap() error { return ErrCommandFailed }

// Output is the captured standard error, trimmed of surrounding white space
func (e *CommandError) Output() string {
	return strings.TrimSpace(e.Stderr)
}

// PathError is returned when a step directory does not exist or cannot be used as a working directory
type PathError struct {
	Directory string
	Resolved  string
	Err       error
}

func (e *PathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s (%s)", ErrInvalidDirectory, e.Directory, e.Resolved)
	}

	return fmt.Sprintf("%s: %s (%s): %v", ErrInvalidDirectory, e.Directory, e.Resolved, e.Err)
}

func (e *PathError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidDirectory}
	}

	return []error{ErrInvalidDirectory, e.Err}
}
