// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/choria-io/bootstrap/metrics"
	"github.com/choria-io/bootstrap/model"
)

// EventSubjectPrefix is the subject prefix events are published below
const EventSubjectPrefix = "choria.bootstrap.events"

// Publisher is the part of a NATS connection used to publish events
type Publisher interface {
	Publish(subject string, data []byte) error
}

var _ Publisher = (*nats.Conn)(nil)

// PublishingSessionStore records events in another store and publishes every recorded event
type PublishingSessionStore struct {
	model.SessionStore

	pub    Publisher
	prefix string
	log    model.Logger
}

// NewPublishingSessionStore wraps store so events are also published using pub, publish failures are logged and counted but do not fail the step
func NewPublishingSessionStore(store model.SessionStore, pub Publisher, logger model.Logger) (*PublishingSessionStore, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if pub == nil {
		return nil, fmt.Errorf("publisher is required")
	}

	return &PublishingSessionStore{
		SessionStore: store,
		pub:          pub,
		prefix:       EventSubjectPrefix,
		log:          logger,
	}, nil
}

// StartSession starts a session in the underlying store and publishes the start event it recorded
func (s *PublishingSessionStore) StartSession(root string, batch model.Batch) error {
	err := s.SessionStore.StartSession(root, batch)
	if err != nil {
		return err
	}

	events, err := s.SessionStore.AllEvents()
	if err != nil {
		return err
	}

	start := LastStart(events)
	if start != nil {
		s.publish(start)
	}

	return nil
}

// RecordEvent records the event and then publishes it
func (s *PublishingSessionStore) RecordEvent(event model.SessionEvent) error {
	err := s.SessionStore.RecordEvent(event)
	if err != nil {
		return err
	}

	s.publish(event)

	return nil
}

// EventSubject is the subject an event is published to
func (s *PublishingSessionStore) EventSubject(event model.SessionEvent) string {
	return fmt.Sprintf("%s.%s", s.prefix, eventKind(event))
}

func (s *PublishingSessionStore) publish(event model.SessionEvent) {
	kind := eventKind(event)

	data, err := json.Marshal(event)
	if err != nil {
		metrics.EventPublishFailureCount.WithLabelValues(kind).Inc()
		s.log.Error("Could not encode event", "event", event.SessionEventID(), "error", err)
		return
	}

	err = s.pub.Publish(s.EventSubject(event), data)
	if err != nil {
		metrics.EventPublishFailureCount.WithLabelValues(kind).Inc()
		s.log.Error("Could not publish event", "event", event.SessionEventID(), "error", err)
	}
}

func eventKind(event model.SessionEvent) string {
	switch event.(type) {
	case *model.SessionStartEvent:
		return "start"
	case *model.StepEvent:
		return "step"
	default:
		return "unknown"
	}
}
