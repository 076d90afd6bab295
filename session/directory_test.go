// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/choria-io/bootstrap/model"
	"github.com/choria-io/bootstrap/model/modelmocks"
)

var _ = Describe("DirectorySessionStore", func() {
	var (
		mockctl *gomock.Controller
		logger  *modelmocks.MockLogger
		tempDir string
		store   *DirectorySessionStore
	)

	BeforeEach(func() {
		mockctl = gomock.NewController(GinkgoT())
		logger = modelmocks.NewMockLogger(mockctl)

		logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
		logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
		logger.EXPECT().Error(gomock.Any(), gomock.Any()).AnyTimes()

		tempDir = filepath.Join(GinkgoT().TempDir(), "session")

		var err error
		store, err = NewDirectorySessionStore(tempDir, logger)
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		mockctl.Finish()
	})

	Describe("NewDirectorySessionStore", func() {
		It("Should require a directory", func() {
			_, err := NewDirectorySessionStore("", logger)
			Expect(err).To(MatchError("session directory path cannot be empty"))
		})

		It("Should create an absolute path from relative directory", func() {
			relStore, err := NewDirectorySessionStore("./relative/path", logger)
			Expect(err).ToNot(HaveOccurred())
			Expect(filepath.IsAbs(relStore.Directory())).To(BeTrue())
		})

		It("Should clean the directory path", func() {
			dirtyStore, err := NewDirectorySessionStore("/some//path/../clean/./path", logger)
			Expect(err).ToNot(HaveOccurred())
			Expect(dirtyStore.Directory()).To(Equal("/some/clean/path"))
		})

		It("Should reject files", func() {
			file := filepath.Join(GinkgoT().TempDir(), "file")
			Expect(os.WriteFile(file, []byte("x"), 0600)).To(Succeed())

			_, err := NewDirectorySessionStore(file, logger)
			Expect(err).To(MatchError(ContainSubstring("is not a directory")))
		})
	})

	Describe("StartSession", func() {
		It("Should create the directory and record a start event", func() {
			Expect(tempDir).ToNot(BeADirectory())

			Expect(store.StartSession("/srv/workspace", newBatch(mockctl, 2))).To(Succeed())
			Expect(tempDir).To(BeADirectory())

			files, err := filepath.Glob(filepath.Join(tempDir, "*.event"))
			Expect(err).ToNot(HaveOccurred())
			Expect(files).To(HaveLen(1))

			data, err := os.ReadFile(files[0])
			Expect(err).ToNot(HaveOccurred())

			var start model.SessionStartEvent
			Expect(json.Unmarshal(data, &start)).To(Succeed())
			Expect(start.Protocol).To(Equal(model.SessionStartEventProtocol))
			Expect(start.Root).To(Equal("/srv/workspace"))
			Expect(start.Steps).To(Equal(2))
		})

		It("Should keep earlier sessions", func() {
			batch := newBatch(mockctl, 1)
			Expect(store.StartSession("/srv", batch)).To(Succeed())
			Expect(store.RecordEvent(stepEvent(0, "npm i", true))).To(Succeed())
			Expect(store.StartSession("/srv", batch)).To(Succeed())

			events, err := store.AllEvents()
			Expect(err).ToNot(HaveOccurred())
			Expect(events).To(HaveLen(3))
		})
	})

	Describe("RecordEvent", func() {
		It("Should reject invalid event ids", func() {
			Expect(store.StartSession("/srv", newBatch(mockctl, 1))).To(Succeed())

			event := stepEvent(0, "npm i", false)
			event.EventID = "../../etc/passwd"
			Expect(store.RecordEvent(event)).To(MatchError(ContainSubstring("invalid event ID")))
		})

		It("Should fail when the directory does not exist", func() {
			Expect(store.RecordEvent(stepEvent(0, "npm i", false))).To(MatchError(ContainSubstring("does not exist")))
		})
	})

	Describe("AllEvents", func() {
		It("Should return nothing for a missing directory", func() {
			events, err := store.AllEvents()
			Expect(err).ToNot(HaveOccurred())
			Expect(events).To(BeEmpty())
		})

		It("Should read events back in time order and skip unknown files", func() {
			Expect(store.StartSession("/srv", newBatch(mockctl, 2))).To(Succeed())
			Expect(store.RecordEvent(stepEvent(0, "cargo build", false))).To(Succeed())
			Expect(store.RecordEvent(stepEvent(1, "npm i", true))).To(Succeed())

			Expect(os.WriteFile(filepath.Join(tempDir, "notes.txt"), []byte("hello"), 0600)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(tempDir, "broken.event"), []byte("{"), 0600)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(tempDir, "other.event"), []byte(`{"protocol":"io.example.v1"}`), 0600)).To(Succeed())

			events, err := store.AllEvents()
			Expect(err).ToNot(HaveOccurred())
			Expect(events).To(HaveLen(3))
			Expect(events[0]).To(BeAssignableToTypeOf(&model.SessionStartEvent{}))

			step, ok := events[2].(*model.StepEvent)
			Expect(ok).To(BeTrue())
			Expect(step.Name).To(Equal("npm i"))
			Expect(step.Failed).To(BeTrue())
		})
	})

	Describe("Event ordering", func() {
		It("Should keep the order of events recorded within one second", func() {
			for run := range 5 {
				runStore, err := NewDirectorySessionStore(filepath.Join(GinkgoT().TempDir(), "ordering"), logger)
				Expect(err).ToNot(HaveOccurred())

				Expect(runStore.StartSession("/srv", newBatch(mockctl, 20))).To(Succeed())
				for i := range 20 {
					Expect(runStore.RecordEvent(stepEvent(i, "npm i", false))).To(Succeed())
				}

				events, err := runStore.AllEvents()
				Expect(err).ToNot(HaveOccurred())
				Expect(events).To(HaveLen(21))
				Expect(events[0]).To(BeAssignableToTypeOf(&model.SessionStartEvent{}), "run %d", run)
				for i, event := range events[1:] {
					Expect(event.(*model.StepEvent).Index).To(Equal(i), "run %d", run)
				}

				summary, err := runStore.StopSession(true)
				Expect(err).ToNot(HaveOccurred())
				Expect(summary.TotalSteps).To(Equal(20))
				Expect(summary.Aborted()).To(BeFalse())
				Expect(summary.Success()).To(BeTrue())
			}
		})

		It("Should read back the latest start for resumed sessions", func() {
			batch := newBatch(mockctl, 1)
			Expect(store.StartSession("/srv", batch)).To(Succeed())
			Expect(store.RecordEvent(stepEvent(0, "npm i", false))).To(Succeed())
			Expect(store.StartSession("/srv/second", batch)).To(Succeed())

			events, err := store.AllEvents()
			Expect(err).ToNot(HaveOccurred())
			Expect(LastStart(events).Root).To(Equal("/srv/second"))
		})
	})

	Describe("EventsForStep", func() {
		It("Should find events across sessions", func() {
			batch := newBatch(mockctl, 1)
			Expect(store.StartSession("/srv", batch)).To(Succeed())
			Expect(store.RecordEvent(stepEvent(0, "npm i", true))).To(Succeed())
			Expect(store.StartSession("/srv", batch)).To(Succeed())
			Expect(store.RecordEvent(stepEvent(0, "npm i", false))).To(Succeed())

			events, err := store.EventsForStep(0, "npm i")
			Expect(err).ToNot(HaveOccurred())
			Expect(events).To(HaveLen(2))
			Expect(model.CompletedPreviously(events)).To(BeTrue())
		})
	})

	Describe("StopSession", func() {
		It("Should summarize only the latest session", func() {
			batch := newBatch(mockctl, 1)
			Expect(store.StartSession("/srv", batch)).To(Succeed())
			Expect(store.RecordEvent(stepEvent(0, "npm i", true))).To(Succeed())
			Expect(store.StartSession("/srv", batch)).To(Succeed())
			Expect(store.RecordEvent(stepEvent(0, "npm i", false))).To(Succeed())

			summary, err := store.StopSession(false)
			Expect(err).ToNot(HaveOccurred())
			Expect(summary.TotalSteps).To(Equal(1))
			Expect(summary.FailedSteps).To(Equal(0))
			Expect(summary.Success()).To(BeTrue())
			Expect(tempDir).To(BeADirectory())
		})

		It("Should remove the directory when destroying", func() {
			Expect(store.StartSession("/srv", newBatch(mockctl, 1))).To(Succeed())

			_, err := store.StopSession(true)
			Expect(err).ToNot(HaveOccurred())
			Expect(tempDir).ToNot(BeADirectory())
		})
	})
})
