// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package cmdrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/choria-io/bootstrap/model"
)

// waitDelay bounds how long output is collected from grandchildren after the child was killed
var waitDelay = 2 * time.Second

// CommandRunner executes system commands and captures their output
type CommandRunner struct {
	logger  model.Logger
	environ []string
}

// NewCommandRunner creates a new CommandRunner instance with the provided logger, children inherit the process environment
func NewCommandRunner(log model.Logger) (*CommandRunner, error) {
	return &CommandRunner{logger: log, environ: os.Environ()}, nil
}

// NewCommandRunnerWithEnvironment creates a CommandRunner whose children start from environ rather than the process environment
func NewCommandRunnerWithEnvironment(log model.Logger, environ []string) (*CommandRunner, error) {
	return &CommandRunner{logger: log, environ: environ}, nil
}

// ExecuteWithOptions runs one child process, exit codes above 0 are returned without an error
func (c *CommandRunner) ExecuteWithOptions(ctx context.Context, opts model.ExtendedExecOptions) ([]byte, []byte, int, error) {
	if opts.Command == "" {
		return nil, nil, 0, errors.New("command not specified")
	}

	logOpts := []any{
		"command", opts.Command, "args", opts.Args,
	}
	if opts.Cwd != "" {
		logOpts = append(logOpts, "cwd", opts.Cwd)
	}
	if opts.Timeout > 0 {
		logOpts = append(logOpts, "timeout", opts.Timeout)
	}

	c.logger.Debug("Running command", logOpts...)

	toCtx := ctx
	var cancel context.CancelFunc
	if opts.Timeout > 0 {
		toCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(toCtx, opts.Command, opts.Args...)
	cmd.WaitDelay = waitDelay

	cmd.Env = append([]string{}, c.environ...)
	cmd.Env = append(cmd.Env, opts.Environment...)

	if opts.Cwd != "" {
		cmd.Dir = opts.Cwd
	}

	if opts.Path != "" {
		cmd.Path = opts.Path
	}

	stdout := bytes.NewBuffer([]byte{})
	stderr := bytes.NewBuffer([]byte{})

	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if toCtx.Err() != nil {
		return stdout.Bytes(), stderr.Bytes(), -1, fmt.Errorf("command interrupted: %w", toCtx.Err())
	}

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// exit codes >0 are results, not errors
		if exitCode > 0 {
			return stdout.Bytes(), stderr.Bytes(), exitCode, nil
		}

		return stdout.Bytes(), stderr.Bytes(), exitCode, err
	}

	if err != nil {
		return stdout.Bytes(), stderr.Bytes(), exitCode, err
	}

	return stdout.Bytes(), stderr.Bytes(), exitCode, nil
}

// Execute runs a command with the given arguments and returns stdout, stderr, exit code, and any error
func (c *CommandRunner) Execute(ctx context.Context, command string, args ...string) ([]byte, []byte, int, error) {
	return c.ExecuteWithOptions(ctx, model.ExtendedExecOptions{Command: command, Args: args})
}
