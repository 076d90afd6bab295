// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"github.com/choria-io/bootstrap/model"
)

type Option func(*Batch) error

// WithOverridingData merges data over the resolved batch data, typically from the command line
func WithOverridingData(data map[string]any) Option {
	return func(b *Batch) error {
		b.overridingData = data
		return nil
	}
}

// WithPolicy overrides the parts of the batch policy that are set in p
func WithPolicy(p model.FailurePolicy) Option {
	return func(b *Batch) error {
		err := p.Validate()
		if err != nil {
			return err
		}

		b.policyOverride = p
		return nil
	}
}
