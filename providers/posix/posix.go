// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package posix

import (
	"context"
	"fmt"

	"github.com/kballard/go-shellquote"

	"github.com/choria-io/bootstrap/model"
)

const ProviderName = "posix"

// Provider splits step commands using shell quoting rules and runs them without a shell
type Provider struct {
	log    model.Logger
	runner model.CommandRunner
}

func NewPosixProvider(log model.Logger, runner model.CommandRunner) (*Provider, error) {
	return &Provider{log: log, runner: runner}, nil
}

func (p *Provider) Execute(ctx context.Context, properties *model.StepProperties, cwd string) (*model.ExecResult, error) {
	words, err := shellquote.Split(properties.Command)
	if err != nil {
		return nil, err
	}

	var command string
	var args []string

	switch len(words) {
	case 0:
		return nil, fmt.Errorf("no command specified")
	case 1:
		command = words[0]
	default:
		command = words[0]
		args = words[1:]
	}

	if p.runner == nil {
		return nil, fmt.Errorf("no command runner configured")
	}

	stdout, stderr, exitCode, err := p.runner.ExecuteWithOptions(ctx, model.ExtendedExecOptions{
		Command:     command,
		Args:        args,
		Cwd:         cwd,
		Environment: properties.Environment,
		Timeout:     properties.ParsedTimeout,
	})
	if err != nil {
		return nil, err
	}

	p.log.Debug("Command finished", "command", command, "cwd", cwd, "exitcode", exitCode)

	return &model.ExecResult{Stdout: stdout, Stderr: stderr, ExitCode: exitCode}, nil
}

func (p *Provider) Name() string {
	return ProviderName
}
