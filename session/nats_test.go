// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/choria-io/bootstrap/model"
	"github.com/choria-io/bootstrap/model/modelmocks"
)

type published struct {
	subject string
	data    []byte
}

type recordingPublisher struct {
	msgs []published
	err  error
	mu   sync.Mutex
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}

	p.msgs = append(p.msgs, published{subject: subject, data: data})

	return nil
}

var _ = Describe("PublishingSessionStore", func() {
	var (
		mockctl *gomock.Controller
		logger  *modelmocks.MockLogger
		pub     *recordingPublisher
		mem     *MemorySessionStore
		store   *PublishingSessionStore
	)

	BeforeEach(func() {
		mockctl = gomock.NewController(GinkgoT())
		logger = modelmocks.NewMockLogger(mockctl)
		logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
		pub = &recordingPublisher{}

		var err error
		mem, err = NewMemorySessionStore(logger)
		Expect(err).ToNot(HaveOccurred())

		store, err = NewPublishingSessionStore(mem, pub, logger)
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		mockctl.Finish()
	})

	It("Should require a store and publisher", func() {
		_, err := NewPublishingSessionStore(nil, pub, logger)
		Expect(err).To(MatchError("session store is required"))

		_, err = NewPublishingSessionStore(mem, nil, logger)
		Expect(err).To(MatchError("publisher is required"))
	})

	It("Should publish the recorded start event", func() {
		Expect(store.StartSession("/srv", newBatch(mockctl, 2))).To(Succeed())

		events, err := mem.AllEvents()
		Expect(err).ToNot(HaveOccurred())

		Expect(pub.msgs).To(HaveLen(1))
		Expect(pub.msgs[0].subject).To(Equal("choria.bootstrap.events.start"))

		var start model.SessionStartEvent
		Expect(json.Unmarshal(pub.msgs[0].data, &start)).To(Succeed())
		Expect(start.EventID).To(Equal(events[0].SessionEventID()))
		Expect(start.Steps).To(Equal(2))
	})

	It("Should record and publish step events", func() {
		Expect(store.StartSession("/srv", newBatch(mockctl, 1))).To(Succeed())

		event := stepEvent(0, "npm i", true)
		Expect(store.RecordEvent(event)).To(Succeed())

		events, err := store.EventsForStep(0, "npm i")
		Expect(err).ToNot(HaveOccurred())
		Expect(events).To(HaveLen(1))

		Expect(pub.msgs).To(HaveLen(2))
		Expect(pub.msgs[1].subject).To(Equal("choria.bootstrap.events.step"))

		var published model.StepEvent
		Expect(json.Unmarshal(pub.msgs[1].data, &published)).To(Succeed())
		Expect(published.EventID).To(Equal(event.EventID))
		Expect(published.Failed).To(BeTrue())
	})

	It("Should not fail when publishing fails", func() {
		pub.err = errors.New("nats: connection closed")
		logger.EXPECT().Error("Could not publish event", gomock.Any()).Times(2)

		Expect(store.StartSession("/srv", newBatch(mockctl, 1))).To(Succeed())
		Expect(store.RecordEvent(stepEvent(0, "npm i", false))).To(Succeed())

		events, err := mem.AllEvents()
		Expect(err).ToNot(HaveOccurred())
		Expect(events).To(HaveLen(2))
	})

	It("Should compute subjects by event kind", func() {
		Expect(store.EventSubject(&model.SessionStartEvent{})).To(Equal("choria.bootstrap.events.start"))
		Expect(store.EventSubject(&model.StepEvent{})).To(Equal("choria.bootstrap.events.step"))
	})
})
