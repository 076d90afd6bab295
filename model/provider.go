// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
)

//go:generate mockgen -write_generate_directive -source provider.go -destination modelmocks/provider.go -package modelmocks

// Provider is an interface for a step provider
type Provider interface {
	Name() string
}

// ExecResult is the captured result of running a step command
type ExecResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// StepProvider runs a step command in a specific working directory
type StepProvider interface {
	Provider

	Execute(ctx context.Context, properties *StepProperties, cwd string) (*ExecResult, error)
}

// ProviderFactory creates step providers, when a step does not name a provider the
// manageable factory with the lowest priority value is used
type ProviderFactory interface {
	Name() string
	IsManageable(facts map[string]any) (bool, int, error)
	New(Logger, CommandRunner) (StepProvider, error)
}
