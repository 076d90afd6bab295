// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/segmentio/ksuid"

	iu "github.com/choria-io/bootstrap/internal/util"
	"github.com/choria-io/bootstrap/metrics"
	"github.com/choria-io/bootstrap/model"
)

// DirectorySessionStore stores step events in a directory of files, events survive between runs so batches can be resumed
type DirectorySessionStore struct {
	directory string
	log       model.Logger
	mu        sync.Mutex
}

// NewDirectorySessionStore creates a new directory of files based session store
func NewDirectorySessionStore(directory string, logger model.Logger) (*DirectorySessionStore, error) {
	if directory == "" {
		return nil, fmt.Errorf("session directory path cannot be empty")
	}

	absDir, err := filepath.Abs(filepath.Clean(directory))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	if iu.FileExists(absDir) && !iu.IsDirectory(absDir) {
		return nil, fmt.Errorf("session store %s is not a directory", absDir)
	}

	logger.Debug("Creating new session store", "store", "directory", "directory", absDir)

	return &DirectorySessionStore{
		log:       logger,
		directory: absDir,
	}, nil
}

// Directory is the absolute path events are stored in
func (s *DirectorySessionStore) Directory() string {
	return s.directory
}

// StartSession records a new session start, earlier sessions are kept
func (s *DirectorySessionStore) StartSession(root string, batch model.Batch) error {
	s.log.Debug("Creating new session record", "steps", len(batch.Steps()), "store", "directory")

	s.mu.Lock()
	err := os.MkdirAll(s.directory, 0755)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	return s.RecordEvent(newStartEvent(root, batch))
}

// EventsForStep returns all events for the step at index with name, the events are sorted in time order with latest event at the end
func (s *DirectorySessionStore) EventsForStep(index int, name string) ([]model.StepEvent, error) {
	allEvents, err := s.AllEvents()
	if err != nil {
		return nil, err
	}

	return filterEvents(allEvents, index, name)
}

// RecordEvent writes the event to <event id>.event in the store directory
func (s *DirectorySessionStore) RecordEvent(event model.SessionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics.UpdateStepMetrics(event)

	// only base62 ksuids are accepted so ids can not traverse out of the directory
	_, err := ksuid.Parse(event.SessionEventID())
	if err != nil {
		return fmt.Errorf("invalid event ID: %w", err)
	}

	if !iu.IsDirectory(s.directory) {
		return fmt.Errorf("session store %s does not exist", s.directory)
	}

	data, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return err
	}

	filename := filepath.Join(s.directory, event.SessionEventID()+".event")
	s.log.Debug("Recording event", "filename", filename)

	return os.WriteFile(filename, data, 0644)
}

// StopSession summarizes the latest session, destroy removes the store directory
func (s *DirectorySessionStore) StopSession(destroy bool) (*model.RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.allEventsUnlocked()
	if err != nil {
		return nil, err
	}

	summary := model.BuildRunSummary(events)

	if destroy && iu.IsDirectory(s.directory) {
		err = os.RemoveAll(s.directory)
		if err != nil {
			s.log.Error("Failed to remove session directory", "error", err)
		}
	}

	return summary, nil
}

// AllEvents returns all events in the store sorted by time order (oldest first)
func (s *DirectorySessionStore) AllEvents() ([]model.SessionEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.allEventsUnlocked()
}

func (s *DirectorySessionStore) allEventsUnlocked() ([]model.SessionEvent, error) {
	var events []model.SessionEvent

	entries, err := os.ReadDir(s.directory)
	if err != nil {
		if os.IsNotExist(err) {
			return events, nil
		}
		return nil, fmt.Errorf("failed to read session directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".event") {
			continue
		}

		filename := filepath.Join(s.directory, entry.Name())
		data, err := os.ReadFile(filename)
		if err != nil {
			s.log.Error("Failed to read event file", "filename", filename, "error", err)
			continue
		}

		event, err := parseEvent(data)
		if err != nil {
			s.log.Warn("Failed to parse event", "filename", filename, "error", err)
			continue
		}

		events = append(events, event)
	}

	// ksuids only sort to the second, events carry their own ordering
	model.SortEvents(events)

	return events, nil
}

func parseEvent(data []byte) (model.SessionEvent, error) {
	var eventType struct {
		Protocol string `json:"protocol"`
	}
	err := json.Unmarshal(data, &eventType)
	if err != nil {
		return nil, err
	}

	switch eventType.Protocol {
	case model.SessionStartEventProtocol:
		var startEvent model.SessionStartEvent
		err = json.Unmarshal(data, &startEvent)
		if err != nil {
			return nil, err
		}
		return &startEvent, nil

	case model.StepEventProtocol:
		var stepEvent model.StepEvent
		err = json.Unmarshal(data, &stepEvent)
		if err != nil {
			return nil, err
		}
		return &stepEvent, nil

	default:
		return nil, fmt.Errorf("unknown event protocol %q", eventType.Protocol)
	}
}
