// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"github.com/choria-io/bootstrap/model"
)

func newStartEvent(root string, batch model.Batch) *model.SessionStartEvent {
	start := model.NewSessionStartEvent(root, len(batch.Steps()))
	start.Source = batch.Source()
	start.Checksum = batch.Checksum()

	return start
}

func filterEvents(allEvents []model.SessionEvent, index int, name string) ([]model.StepEvent, error) {
	var filtered []model.StepEvent
	for _, event := range allEvents {
		stepEvent, ok := event.(*model.StepEvent)
		if !ok {
			continue
		}

		if stepEvent.Index == index && stepEvent.Name == name {
			filtered = append(filtered, *stepEvent)
		}
	}

	return filtered, nil
}

// LastStart returns the most recent session start event, nil when there is none
func LastStart(events []model.SessionEvent) *model.SessionStartEvent {
	for i := len(events) - 1; i >= 0; i-- {
		start, ok := events[i].(*model.SessionStartEvent)
		if ok {
			return start
		}
	}

	return nil
}
