// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/choria-io/bootstrap/metrics"
	"github.com/choria-io/bootstrap/model"
	"github.com/choria-io/bootstrap/step"
)

// ResumeSkipReason is the skip reason of steps that completed in an earlier session
const ResumeSkipReason = "completed in a previous session"

// Execute runs every step in order writing progress and results to out, steps run one at a time with the root as base directory.
//
// A failed command is reported and the batch continues unless the policy stops on command failures. A step whose
// directory can not be used is reported and, by default, aborts the batch with an error wrapping model.ErrBatchAborted.
func (b *Batch) Execute(ctx context.Context, mgr model.Manager, out io.Writer, opts model.ExecuteOptions) (model.SessionStore, error) {
	timer := prometheus.NewTimer(metrics.BatchRunTime.WithLabelValues(b.Source()))
	defer timer.ObserveDuration()

	log, err := mgr.Logger("component", "batch")
	if err != nil {
		return nil, err
	}

	store, err := mgr.StartSession(b)
	if err != nil {
		return nil, err
	}

	if opts.Resume {
		b.checkResumeChecksum(store, log)
	}

	policy := b.Policy()

	for i, prop := range b.Steps() {
		if ctx.Err() != nil {
			return store, b.abort(log, "interrupted", ctx.Err())
		}

		s, err := step.New(ctx, mgr, i, prop)
		if err != nil {
			event := model.NewStepEvent(i, prop)
			event.Failed = true
			event.ErrorKind = model.ErrorKindStep
			event.Error = err.Error()

			fmt.Fprintf(out, "Running '%s' in %s...\n", prop.Command, prop.DisplayDirectory())
			fmt.Fprintf(out, "Error running '%s' in %s: %v\n", prop.Command, prop.DisplayDirectory(), err)
			b.record(mgr, log, event)

			if policy.StopOnCommandFailure() {
				return store, b.abort(log, model.ErrorKindStep, err)
			}

			continue
		}

		rp := s.Properties()

		if opts.Resume {
			events, err := store.EventsForStep(i, rp.StepName())
			if err != nil {
				log.Warn("Could not retrieve previous events", "step", i, "error", err)
			} else if model.CompletedPreviously(events) {
				event := model.NewStepEvent(i, rp)
				event.Skipped = true
				event.Resumed = true
				event.SkipReason = ResumeSkipReason

				fmt.Fprintf(out, "Skipping '%s' in %s: %s\n", rp.Command, rp.DisplayDirectory(), event.SkipReason)
				b.record(mgr, log, event)

				continue
			}
		}

		run, reason, err := s.ShouldRun()
		if err == nil && !run {
			event := model.NewStepEvent(i, rp)
			event.Skipped = true
			event.SkipReason = reason

			fmt.Fprintf(out, "Skipping '%s' in %s: %s\n", rp.Command, rp.DisplayDirectory(), reason)
			b.record(mgr, log, event)

			continue
		}

		fmt.Fprintf(out, "Running '%s' in %s...\n", rp.Command, rp.DisplayDirectory())

		event, err := s.Apply(ctx)
		b.record(mgr, log, event)

		if err == nil {
			fmt.Fprintln(out, event.Stdout)
			continue
		}

		fmt.Fprintf(out, "Error running '%s' in %s: %s\n", rp.Command, rp.DisplayDirectory(), failureOutput(err))

		var perr *model.PathError
		switch {
		// path failures report like command failures, the Running line was already written as the directory is never entered
		case errors.As(err, &perr):
			if policy.AbortOnPathFailure() {
				return store, b.abort(log, model.ErrorKindPath, err)
			}

		case policy.StopOnCommandFailure():
			return store, b.abort(log, event.ErrorKind, err)
		}
	}

	return store, nil
}

func (b *Batch) abort(log model.Logger, kind string, err error) error {
	metrics.BatchAbortedCount.WithLabelValues(b.Source(), kind).Inc()
	log.Error("Batch aborted", "kind", kind, "error", err)

	return fmt.Errorf("%w: %w", model.ErrBatchAborted, err)
}

func (b *Batch) record(mgr model.Manager, log model.Logger, event *model.StepEvent) {
	if event == nil {
		return
	}

	event.LogStatus(log)

	err := mgr.RecordEvent(event)
	if err != nil {
		log.Error("Could not save event", "event", event.String(), "error", err)
	}
}

// checkResumeChecksum warns when the batch changed since the session being resumed started
func (b *Batch) checkResumeChecksum(store model.SessionStore, log model.Logger) {
	events, err := store.AllEvents()
	if err != nil {
		log.Warn("Could not retrieve session events", "error", err)
		return
	}

	// the last start event is the session just started
	var starts []*model.SessionStartEvent
	for _, e := range events {
		if start, ok := e.(*model.SessionStartEvent); ok {
			starts = append(starts, start)
		}
	}

	if len(starts) < 2 {
		log.Warn("No previous session to resume, running all steps")
		return
	}

	previous := starts[len(starts)-2]
	if previous.Checksum != "" && previous.Checksum != b.Checksum() {
		log.Warn("Batch changed since the previous session, steps are matched by position and name", "previous", previous.Checksum, "current", b.Checksum())
	}
}

// failureOutput is the text shown for a failed step, the captured standard error for failed commands
func failureOutput(err error) string {
	var cerr *model.CommandError
	if errors.As(err, &cerr) {
		return cerr.Stderr
	}

	return err.Error()
}
