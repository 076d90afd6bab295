// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"sync"
	"time"

	"github.com/choria-io/bootstrap/metrics"
	"github.com/choria-io/bootstrap/model"
)

// MemorySessionStore stores step events in memory for a session
type MemorySessionStore struct {
	start  time.Time
	events []model.SessionEvent
	log    model.Logger
	mu     sync.Mutex
}

// NewMemorySessionStore creates a new in-memory session store
func NewMemorySessionStore(logger model.Logger) (*MemorySessionStore, error) {
	logger.Debug("Creating new session store", "store", "memory")
	return &MemorySessionStore{
		log:    logger,
		events: make([]model.SessionEvent, 0),
	}, nil
}

// StartSession clears the event log and starts a new session for the given batch
func (s *MemorySessionStore) StartSession(root string, batch model.Batch) error {
	s.mu.Lock()
	s.events = make([]model.SessionEvent, 0)
	s.mu.Unlock()

	s.log.Debug("Creating new session record", "steps", len(batch.Steps()), "store", "memory")
	start := newStartEvent(root, batch)
	s.start = start.TimeStamp

	return s.RecordEvent(start)
}

// RecordEvent adds an event to the session
func (s *MemorySessionStore) RecordEvent(event model.SessionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics.UpdateStepMetrics(event)

	s.events = append(s.events, event)

	return nil
}

// StopSession summarizes the session, destroy discards all events
func (s *MemorySessionStore) StopSession(destroy bool) (*model.RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := model.BuildRunSummary(s.events)

	if destroy {
		s.events = make([]model.SessionEvent, 0)
	}

	return summary, nil
}

// EventsForStep returns all events for the step at index with name, the events are in time order with latest event at the end
func (s *MemorySessionStore) EventsForStep(index int, name string) ([]model.StepEvent, error) {
	allEvents, err := s.AllEvents()
	if err != nil {
		return nil, err
	}

	return filterEvents(allEvents, index, name)
}

// AllEvents returns all events in the session in time order
func (s *MemorySessionStore) AllEvents() ([]model.SessionEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	eventsCopy := make([]model.SessionEvent, len(s.events))
	copy(eventsCopy, s.events)

	return eventsCopy, nil
}
