// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/ksuid"
)

//go:generate mockgen -write_generate_directive -source event.go -destination modelmocks/event.go -package modelmocks

type SessionEvent interface {
	SessionEventID() string
	String() string
}

type SessionStore interface {
	StartSession(root string, batch Batch) error
	StopSession(destroy bool) (*RunSummary, error)
	RecordEvent(SessionEvent) error
	EventsForStep(index int, name string) ([]StepEvent, error)
	AllEvents() ([]SessionEvent, error)
}

const StepEventProtocol = "io.choria.bootstrap.v1.step.event"
const SessionStartEventProtocol = "io.choria.bootstrap.v1.session.start"

const (
	// ErrorKindCommand marks a step whose command exited non-zero
	ErrorKindCommand = "command"
	// ErrorKindPath marks a step whose directory could not be used
	ErrorKindPath = "path"
	// ErrorKindStep marks a step that could not be prepared or started
	ErrorKindStep = "step"
)

// StepEvent is the outcome of running one step
type StepEvent struct {
	Protocol   string        `json:"protocol" yaml:"protocol"`
	EventID    string        `json:"event_id" yaml:"event_id"`
	TimeStamp  time.Time     `json:"timestamp" yaml:"timestamp"`
	Sequence   uint64        `json:"sequence" yaml:"sequence"`
	Index      int           `json:"index" yaml:"index"`
	Name       string        `json:"name" yaml:"name"`
	Named      bool          `json:"named,omitempty" yaml:"named,omitempty"`
	Command    string        `json:"command" yaml:"command"`
	Directory  string        `json:"directory" yaml:"directory"`
	Resolved   string        `json:"resolved,omitempty" yaml:"resolved,omitempty"`
	Provider   string        `json:"provider,omitempty" yaml:"provider,omitempty"`
	Stdout     string        `json:"stdout,omitempty" yaml:"stdout,omitempty"`
	Stderr     string        `json:"stderr,omitempty" yaml:"stderr,omitempty"`
	ExitCode   int           `json:"exit_code" yaml:"exit_code"`
	Attempts   int           `json:"attempts" yaml:"attempts"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
	SkipReason string        `json:"skip_reason,omitempty" yaml:"skip_reason,omitempty"`
	Resumed    bool          `json:"resumed,omitempty" yaml:"resumed,omitempty"`

	ErrorKind string `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
	Failed    bool   `json:"failed" yaml:"failed"`
	Skipped   bool   `json:"skipped" yaml:"skipped"`
}

type SessionStartEvent struct {
	Protocol  string    `json:"protocol" yaml:"protocol"`
	EventID   string    `json:"event_id" yaml:"event_id"`
	TimeStamp time.Time `json:"timestamp" yaml:"timestamp"`
	Sequence  uint64    `json:"sequence" yaml:"sequence"`
	Root      string    `json:"root,omitempty" yaml:"root,omitempty"`
	Source    string    `json:"source,omitempty" yaml:"source,omitempty"`
	Checksum  string    `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	Steps     int       `json:"steps" yaml:"steps"`
}

var (
	stampMu   sync.Mutex
	lastStamp time.Time
	lastSeq   uint64
)

// nextStamp returns a time stamp that never goes backwards within the process and a sequence number breaking ties
func nextStamp() (time.Time, uint64) {
	stampMu.Lock()
	defer stampMu.Unlock()

	now := time.Now().UTC()
	if now.Before(lastStamp) {
		now = lastStamp
	}

	lastStamp = now
	lastSeq++

	return now, lastSeq
}

func NewSessionStartEvent(root string, steps int) *SessionStartEvent {
	ts, seq := nextStamp()

	return &SessionStartEvent{
		Protocol:  SessionStartEventProtocol,
		EventID:   ksuid.New().String(),
		TimeStamp: ts,
		Sequence:  seq,
		Root:      root,
		Steps:     steps,
	}
}

func NewStepEvent(index int, step *StepProperties) *StepEvent {
	ts, seq := nextStamp()

	return &StepEvent{
		Protocol:  StepEventProtocol,
		EventID:   ksuid.New().String(),
		TimeStamp: ts,
		Sequence:  seq,
		Index:     index,
		Name:      step.StepName(),
		Named:     step.Name != "",
		Command:   step.Command,
		Directory: step.DisplayDirectory(),
		Provider:  step.Provider,
	}
}

func (t *SessionStartEvent) SessionEventID() string { return t.EventID }
func (t *SessionStartEvent) String() string {
	return fmt.Sprintf("session %s started %s with %d steps", t.EventID, t.TimeStamp.Format(time.RFC3339), t.Steps)
}

func (t *StepEvent) SessionEventID() string { return t.EventID }

// MetricLabel is the step name when one was set, otherwise the step position, commands are never used as labels
func (t *StepEvent) MetricLabel() string {
	if t.Named {
		return t.Name
	}

	return fmt.Sprintf("step-%d", t.Index)
}

// Succeeded indicates the step ran and its command exited 0
func (t *StepEvent) Succeeded() bool {
	return !t.Failed && !t.Skipped
}

func (t *StepEvent) LogStatus(log Logger) {
	args := []any{
		"directory", t.Directory,
		"runtime", t.Duration.Truncate(time.Millisecond),
	}

	if t.Provider != "" {
		args = append(args, "provider", t.Provider)
	}

	if t.Attempts > 1 {
		args = append(args, "attempts", t.Attempts)
	}

	switch {
	case t.Failed:
		args = append(args, "kind", t.ErrorKind, "error", t.Error)
		if t.ErrorKind == ErrorKindCommand {
			args = append(args, "exitcode", t.ExitCode)
		}
		log.Error(fmt.Sprintf("step #%d %s failed", t.Index, t.Name), args...)
	case t.Skipped:
		log.Warn(fmt.Sprintf("step #%d %s skipped", t.Index, t.Name), append(args, "reason", t.SkipReason)...)
	default:
		log.Info(fmt.Sprintf("step #%d %s succeeded", t.Index, t.Name), args...)
	}
}

func (t *StepEvent) String() string {
	switch {
	case t.Failed:
		return fmt.Sprintf("step #%d %s failed directory=%s runtime=%v kind=%s error=%v", t.Index, t.Name, t.Directory, t.Duration, t.ErrorKind, t.Error)
	case t.Skipped:
		return fmt.Sprintf("step #%d %s skipped directory=%s reason=%s", t.Index, t.Name, t.Directory, t.SkipReason)
	default:
		return fmt.Sprintf("step #%d %s succeeded directory=%s runtime=%v", t.Index, t.Name, t.Directory, t.Duration)
	}
}

func eventOrder(event SessionEvent) (time.Time, uint64) {
	switch e := event.(type) {
	case *StepEvent:
		return e.TimeStamp, e.Sequence
	case *SessionStartEvent:
		return e.TimeStamp, e.Sequence
	default:
		return time.Time{}, 0
	}
}

// SortEvents sorts events in the order they were created, by time stamp then sequence
func SortEvents(events []SessionEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		ti, si := eventOrder(events[i])
		tj, sj := eventOrder(events[j])

		if !ti.Equal(tj) {
			return ti.Before(tj)
		}

		return si < sj
	})
}

// CompletedPreviously indicates the latest event that ran the step, ignoring steps skipped by a resume, succeeded
func CompletedPreviously(events []StepEvent) bool {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Resumed {
			continue
		}

		return events[i].Succeeded()
	}

	return false
}

// RunSummary provides a statistical summary of the latest session in a set of events
type RunSummary struct {
	SessionID      string        `json:"session_id" yaml:"session_id"`
	Source         string        `json:"source,omitempty" yaml:"source,omitempty"`
	Checksum       string        `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	StartTime      time.Time     `json:"start_time" yaml:"start_time"`
	EndTime        time.Time     `json:"end_time" yaml:"end_time"`
	TotalDuration  time.Duration `json:"total_duration" yaml:"total_duration"`
	PlannedSteps   int           `json:"planned_steps" yaml:"planned_steps"`
	TotalSteps     int           `json:"total_steps" yaml:"total_steps"`
	SucceededSteps int           `json:"succeeded_steps" yaml:"succeeded_steps"`
	FailedSteps    int           `json:"failed_steps" yaml:"failed_steps"`
	SkippedSteps   int           `json:"skipped_steps" yaml:"skipped_steps"`
	CommandErrors  int           `json:"command_errors" yaml:"command_errors"`
	PathErrors     int           `json:"path_errors" yaml:"path_errors"`
	TotalAttempts  int           `json:"total_attempts" yaml:"total_attempts"`
	Failures       []string      `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// BuildRunSummary creates a summary of the most recent session found in events, events must be in time order
func BuildRunSummary(events []SessionEvent) *RunSummary {
	summary := &RunSummary{}
	var totalTime time.Duration

	for _, event := range events {
		if startEvent, ok := event.(*SessionStartEvent); ok {
			summary = &RunSummary{
				SessionID:    startEvent.EventID,
				Source:       startEvent.Source,
				Checksum:     startEvent.Checksum,
				StartTime:    startEvent.TimeStamp,
				PlannedSteps: startEvent.Steps,
			}
			totalTime = 0
			continue
		}

		stepEvent, ok := event.(*StepEvent)
		if !ok {
			continue
		}

		totalTime += stepEvent.Duration
		summary.TotalSteps++
		summary.TotalAttempts += stepEvent.Attempts

		if stepEvent.TimeStamp.After(summary.EndTime) {
			summary.EndTime = stepEvent.TimeStamp
		}

		switch {
		case stepEvent.Failed:
			summary.FailedSteps++
			summary.Failures = append(summary.Failures, stepEvent.String())

			switch stepEvent.ErrorKind {
			case ErrorKindCommand:
				summary.CommandErrors++
			case ErrorKindPath:
				summary.PathErrors++
			}
		case stepEvent.Skipped:
			summary.SkippedSteps++
		default:
			summary.SucceededSteps++
		}
	}

	if !summary.StartTime.IsZero() && !summary.EndTime.IsZero() {
		summary.TotalDuration = summary.EndTime.Sub(summary.StartTime)
	} else {
		summary.TotalDuration = totalTime
	}

	return summary
}

// Aborted indicates fewer steps ran than were planned
func (s *RunSummary) Aborted() bool {
	return s.PlannedSteps > 0 && s.TotalSteps < s.PlannedSteps
}

// Success indicates no step failed and the batch ran to completion
func (s *RunSummary) Success() bool {
	return s.FailedSteps == 0 && !s.Aborted()
}

// String returns a human-readable summary of the session
func (s *RunSummary) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Session: %d steps, %d succeeded, %d failed, %d skipped, duration=%v", s.TotalSteps, s.SucceededSteps, s.FailedSteps, s.SkippedSteps, s.TotalDuration)
	if s.Aborted() {
		fmt.Fprintf(&sb, ", aborted after %d of %d steps", s.TotalSteps, s.PlannedSteps)
	}

	return sb.String()
}
