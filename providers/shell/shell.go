// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/choria-io/bootstrap/model"
)

const ProviderName = "shell"

var (
	shellPath = "/bin/sh"
	shellFlag = "-c"
)

func init() {
	if runtime.GOOS == "windows" {
		shellPath = filepath.Join(os.Getenv("SystemRoot"), "System32", "cmd.exe")
		shellFlag = "/c"
	}
}

// Provider runs step commands through the system shell so pipes, globs and variables work as typed
type Provider struct {
	log    model.Logger
	runner model.CommandRunner
}

func NewShellProvider(log model.Logger, runner model.CommandRunner) (*Provider, error) {
	return &Provider{log: log, runner: runner}, nil
}

func (p *Provider) Execute(ctx context.Context, properties *model.StepProperties, cwd string) (*model.ExecResult, error) {
	if p.runner == nil {
		return nil, fmt.Errorf("no command runner configured")
	}

	if properties.Command == "" {
		return nil, fmt.Errorf("no command to execute")
	}

	stdout, stderr, exitCode, err := p.runner.ExecuteWithOptions(ctx, model.ExtendedExecOptions{
		Command:     shellPath,
		Args:        []string{shellFlag, properties.Command},
		Cwd:         cwd,
		Environment: properties.Environment,
		Timeout:     properties.ParsedTimeout,
	})
	if err != nil {
		return nil, err
	}

	p.log.Debug("Command finished", "command", properties.Command, "cwd", cwd, "exitcode", exitCode)

	return &model.ExecResult{Stdout: stdout, Stderr: stderr, ExitCode: exitCode}, nil
}

func (p *Provider) Name() string {
	return ProviderName
}
