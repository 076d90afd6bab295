// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/choria-io/fisk"

	"github.com/choria-io/bootstrap/batch"
	"github.com/choria-io/bootstrap/manager"
	"github.com/choria-io/bootstrap/metrics"
	"github.com/choria-io/bootstrap/model"
)

type runCommand struct {
	batchSelection

	stopOnFailure       bool
	continueOnPathError bool
	session             string
	resume              bool
	noReport            bool
	monitorPort         int
	natsContext         string
}

func registerRunCommand(app *fisk.Application) {
	cmd := &runCommand{}

	run := app.Command("run", "Runs a batch of commands").Default().Action(cmd.runAction)
	cmd.addFlags(run)
	run.Flag("stop-on-failure", "Stop the batch when a command fails").UnNegatableBoolVar(&cmd.stopOnFailure)
	run.Flag("continue-on-path-error", "Continue the batch when a step directory does not exist").UnNegatableBoolVar(&cmd.continueOnPathError)
	run.Flag("session", "Directory to record the session in").Envar("BOOTSTRAP_SESSION_STORE").StringVar(&cmd.session)
	run.Flag("resume", "Skip steps that completed in the previous session").UnNegatableBoolVar(&cmd.resume)
	run.Flag("no-report", "Do not show a summary after the run").UnNegatableBoolVar(&cmd.noReport)
	run.Flag("monitor-port", "Port to expose Prometheus metrics on").PlaceHolder("PORT").IntVar(&cmd.monitorPort)
	run.Flag("nats-context", "NATS context to publish session events with").Envar("BOOTSTRAP_NATS_CONTEXT").StringVar(&cmd.natsContext)
}

func (c *runCommand) runAction(_ *fisk.ParseContext) error {
	if c.resume && c.session == "" {
		return fmt.Errorf("resuming requires a session directory, set --session or BOOTSTRAP_SESSION_STORE")
	}

	var opts []manager.Option
	if c.session != "" {
		opts = append(opts, manager.WithSessionDirectory(c.session))
	}
	if c.natsContext != "" {
		opts = append(opts, manager.WithNatsContext(c.natsContext))
	}

	mgr, out, err := newManager(c.root, opts...)
	if err != nil {
		return err
	}
	defer mgr.Close()

	if c.monitorPort > 0 {
		metrics.RegisterMetrics()
		metrics.ListenAndServe(c.monitorPort, out)
	}

	var policy model.FailurePolicy
	if c.stopOnFailure {
		policy.CommandFailure = model.CommandFailureStop
	}
	if c.continueOnPathError {
		policy.PathFailure = model.PathFailureContinue
	}

	b, err := c.resolve(mgr, batch.WithPolicy(policy))
	if err != nil {
		return err
	}

	_, runErr := b.Execute(ctx, mgr, os.Stdout, model.ExecuteOptions{Resume: c.resume})

	summary, err := mgr.SessionSummary()
	if err != nil {
		return err
	}

	if !c.noReport {
		showSummary("Batch Run Summary", summary)
	}

	switch {
	case errors.Is(runErr, model.ErrBatchAborted):
		return fmt.Errorf("%w after %d of %d steps", model.ErrBatchAborted, summary.TotalSteps, summary.PlannedSteps)
	case runErr != nil:
		return runErr
	case !summary.Success():
		return fmt.Errorf("%d of %d steps failed", summary.FailedSteps, summary.TotalSteps)
	}

	return nil
}

func showSummary(title string, summary *model.RunSummary) {
	fmt.Println()
	fmt.Println(title)
	fmt.Println()
	if summary.Source != "" {
		fmt.Printf("             Batch: %s\n", summary.Source)
	}
	if summary.TotalDuration > 0 {
		fmt.Printf("          Run Time: %v\n", summary.TotalDuration.Round(time.Millisecond))
	}
	fmt.Printf("     Planned Steps: %d\n", summary.PlannedSteps)
	fmt.Printf("       Total Steps: %d\n", summary.TotalSteps)
	fmt.Printf("   Succeeded Steps: %d\n", summary.SucceededSteps)
	fmt.Printf("      Failed Steps: %d\n", summary.FailedSteps)
	fmt.Printf("     Skipped Steps: %d\n", summary.SkippedSteps)
	fmt.Printf("    Command Errors: %d\n", summary.CommandErrors)
	fmt.Printf("       Path Errors: %d\n", summary.PathErrors)
	fmt.Printf("    Total Attempts: %d\n", summary.TotalAttempts)

	if summary.Aborted() {
		fmt.Println()
		fmt.Printf("Aborted after %d of %d steps\n", summary.TotalSteps, summary.PlannedSteps)
	}

	if len(summary.Failures) > 0 {
		fmt.Println()
		fmt.Println("Failures:")
		fmt.Println()
		for _, f := range summary.Failures {
			fmt.Printf("  %s\n", f)
		}
	}
}
