// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"slices"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/segmentio/ksuid"
)

var _ = Describe("Events", func() {
	Describe("NewStepEvent", func() {
		It("Should create a valid event", func() {
			event := NewStepEvent(2, &StepProperties{Command: "npm i", Directory: "./kit", Provider: "shell"})
			Expect(event.Protocol).To(Equal(StepEventProtocol))
			Expect(event.Index).To(Equal(2))
			Expect(event.Name).To(Equal("npm i"))
			Expect(event.Directory).To(Equal("./kit"))
			Expect(event.Provider).To(Equal("shell"))
			_, err := ksuid.Parse(event.EventID)
			Expect(err).ToNot(HaveOccurred())
			Expect(event.Succeeded()).To(BeTrue())
		})

		It("Should label metrics by name or position", func() {
			Expect(NewStepEvent(3, &StepProperties{Command: "npm i --prefix ./kit"}).MetricLabel()).To(Equal("step-3"))
			Expect(NewStepEvent(3, &StepProperties{Name: "kit", Command: "npm i --prefix ./kit"}).MetricLabel()).To(Equal("kit"))
		})
	})

	Describe("String", func() {
		It("Should describe each outcome", func() {
			event := NewStepEvent(0, &StepProperties{Command: "cargo build"})
			Expect(event.String()).To(ContainSubstring("step #0 cargo build succeeded directory=./"))

			event.Skipped = true
			event.SkipReason = "unless matched"
			Expect(event.String()).To(ContainSubstring("skipped directory=./ reason=unless matched"))

			event.Skipped = false
			event.Failed = true
			event.ErrorKind = ErrorKindCommand
			event.Error = "boom"
			Expect(event.String()).To(ContainSubstring("failed"))
			Expect(event.String()).To(ContainSubstring("kind=command error=boom"))
		})
	})

	Describe("LogStatus", func() {
		var logger *mockLogger

		BeforeEach(func() {
			logger = &mockLogger{}
		})

		It("Should log at the level matching the outcome", func() {
			event := NewStepEvent(1, &StepProperties{Command: "npm i"})
			event.LogStatus(logger)
			Expect(logger.levels).To(Equal([]string{"info"}))

			event.Skipped = true
			event.LogStatus(logger)
			event.Skipped = false
			event.Failed = true
			event.ErrorKind = ErrorKindPath
			event.LogStatus(logger)

			Expect(logger.levels).To(Equal([]string{"info", "warn", "error"}))
			Expect(logger.messages[2]).To(Equal("step #1 npm i failed"))
		})
	})

	Describe("BuildRunSummary", func() {
		It("Should summarize the most recent session", func() {
			old := NewSessionStartEvent("/srv", 1)
			oldStep := NewStepEvent(0, &StepProperties{Command: "false"})
			oldStep.Failed = true

			start := NewSessionStartEvent("/srv", 5)
			start.TimeStamp = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

			ok := NewStepEvent(0, &StepProperties{Command: "echo hello"})
			ok.TimeStamp = start.TimeStamp.Add(time.Second)
			ok.Attempts = 1

			cmd := NewStepEvent(1, &StepProperties{Command: "exit 1"})
			cmd.Failed = true
			cmd.ErrorKind = ErrorKindCommand
			cmd.Attempts = 2
			cmd.TimeStamp = start.TimeStamp.Add(2 * time.Second)

			skipped := NewStepEvent(2, &StepProperties{Command: "npm i"})
			skipped.Skipped = true
			skipped.TimeStamp = start.TimeStamp.Add(3 * time.Second)

			path := NewStepEvent(3, &StepProperties{Command: "npm i", Directory: "./missing"})
			path.Failed = true
			path.ErrorKind = ErrorKindPath
			path.TimeStamp = start.TimeStamp.Add(10 * time.Second)

			summary := BuildRunSummary([]SessionEvent{old, oldStep, start, ok, cmd, skipped, path})
			Expect(summary.SessionID).To(Equal(start.EventID))
			Expect(summary.PlannedSteps).To(Equal(5))
			Expect(summary.TotalSteps).To(Equal(4))
			Expect(summary.SucceededSteps).To(Equal(1))
			Expect(summary.FailedSteps).To(Equal(2))
			Expect(summary.SkippedSteps).To(Equal(1))
			Expect(summary.CommandErrors).To(Equal(1))
			Expect(summary.PathErrors).To(Equal(1))
			Expect(summary.TotalAttempts).To(Equal(3))
			Expect(summary.Failures).To(HaveLen(2))
			Expect(summary.TotalDuration).To(Equal(10 * time.Second))
			Expect(summary.Aborted()).To(BeTrue())
			Expect(summary.Success()).To(BeFalse())
			Expect(summary.String()).To(ContainSubstring("aborted after 4 of 5 steps"))
		})

		It("Should report success for complete clean runs", func() {
			start := NewSessionStartEvent("/srv", 1)
			summary := BuildRunSummary([]SessionEvent{start, NewStepEvent(0, &StepProperties{Command: "true"})})
			Expect(summary.Success()).To(BeTrue())
			Expect(summary.String()).ToNot(ContainSubstring("aborted"))
		})

		It("Should handle empty event lists", func() {
			summary := BuildRunSummary(nil)
			Expect(summary.TotalSteps).To(Equal(0))
			Expect(summary.Success()).To(BeTrue())
		})

		It("Should carry the batch source and checksum", func() {
			start := NewSessionStartEvent("/srv", 1)
			start.Source = "preset:setup"
			start.Checksum = "abc123"

			summary := BuildRunSummary([]SessionEvent{start})
			Expect(summary.Source).To(Equal("preset:setup"))
			Expect(summary.Checksum).To(Equal("abc123"))
		})
	})

	Describe("SortEvents", func() {
		It("Should give events created together increasing sequences", func() {
			start := NewSessionStartEvent("/srv", 2)
			first := NewStepEvent(0, &StepProperties{Command: "make"})
			second := NewStepEvent(1, &StepProperties{Command: "make install"})

			Expect(first.Sequence).To(BeNumerically(">", start.Sequence))
			Expect(second.Sequence).To(BeNumerically(">", first.Sequence))
			Expect(first.TimeStamp).ToNot(BeTemporally("<", start.TimeStamp))
			Expect(second.TimeStamp).ToNot(BeTemporally("<", first.TimeStamp))
		})

		It("Should order by time stamp then sequence regardless of id", func() {
			ts := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

			start := &SessionStartEvent{EventID: "z", TimeStamp: ts, Sequence: 1}
			first := &StepEvent{EventID: "y", TimeStamp: ts, Sequence: 2, Index: 0}
			second := &StepEvent{EventID: "a", TimeStamp: ts, Sequence: 3, Index: 1}
			older := &StepEvent{EventID: "m", TimeStamp: ts.Add(-time.Hour), Sequence: 9, Index: 0}

			events := []SessionEvent{second, first, start, older}
			SortEvents(events)

			Expect(events).To(Equal([]SessionEvent{older, start, first, second}))
		})

		It("Should summarize a session created within one second", func() {
			events := []SessionEvent{NewSessionStartEvent("/srv", 50)}
			for i := range 50 {
				events = append(events, NewStepEvent(i, &StepProperties{Command: "true"}))
			}

			shuffled := append([]SessionEvent{}, events...)
			slices.SortFunc(shuffled, func(a, b SessionEvent) int { return strings.Compare(a.SessionEventID(), b.SessionEventID()) })
			SortEvents(shuffled)

			Expect(shuffled).To(Equal(events))

			summary := BuildRunSummary(shuffled)
			Expect(summary.TotalSteps).To(Equal(50))
			Expect(summary.Aborted()).To(BeFalse())
			Expect(summary.Success()).To(BeTrue())
		})
	})

	Describe("CompletedPreviously", func() {
		var succeeded, failed, resumed StepEvent

		BeforeEach(func() {
			succeeded = *NewStepEvent(0, &StepProperties{Command: "make"})
			failed = *NewStepEvent(0, &StepProperties{Command: "make"})
			failed.Failed = true
			resumed = *NewStepEvent(0, &StepProperties{Command: "make"})
			resumed.Skipped = true
			resumed.Resumed = true
		})

		It("Should be false without events", func() {
			Expect(CompletedPreviously(nil)).To(BeFalse())
		})

		It("Should use the latest event", func() {
			Expect(CompletedPreviously([]StepEvent{failed, succeeded})).To(BeTrue())
			Expect(CompletedPreviously([]StepEvent{succeeded, failed})).To(BeFalse())
		})

		It("Should ignore steps skipped by earlier resumes", func() {
			Expect(CompletedPreviously([]StepEvent{succeeded, resumed, resumed})).To(BeTrue())
			Expect(CompletedPreviously([]StepEvent{failed, resumed})).To(BeFalse())
			Expect(CompletedPreviously([]StepEvent{resumed})).To(BeFalse())
		})

		It("Should not treat condition skips as completed", func() {
			skipped := succeeded
			skipped.Skipped = true

			Expect(CompletedPreviously([]StepEvent{skipped})).To(BeFalse())
		})
	})
})

type mockLogger struct {
	levels   []string
	messages []string
}

func (l *mockLogger) record(level string, msg string) {
	l.levels = append(l.levels, level)
	l.messages = append(l.messages, msg)
}

func (l *mockLogger) Debug(msg string, args ...any) { l.record("debug", msg) }
func (l *mockLogger) Info(msg string, args ...any)  { l.record("info", msg) }
func (l *mockLogger) Warn(msg string, args ...any)  { l.record("warn", msg) }
func (l *mockLogger) Error(msg string, args ...any) { l.record("error", msg) }
func (l *mockLogger) With(args ...any) Logger       { return l }
