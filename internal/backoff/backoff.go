// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package backoff provides jittered sleeps between retried step attempts
package backoff

import (
	"context"
	"math/rand/v2"
	"time"
)

// Policy is a backoff policy, the n'th try sleeps for roughly Millis[n] milliseconds
type Policy struct {
	Millis []int
}

// FiveSec grows from 500ms to 5 seconds
var FiveSec = Policy{
	Millis: []int{500, 750, 1000, 1500, 2000, 2500, 3000, 3500, 4000, 4500, 5000},
}

// Duration is the jittered sleep for the n'th try, tries beyond the policy use the last value
func (p Policy) Duration(n int) time.Duration {
	if len(p.Millis) == 0 {
		return 0
	}

	if n >= len(p.Millis) {
		n = len(p.Millis) - 1
	}
	if n < 0 {
		n = 0
	}

	return jitter(p.Millis[n])
}

// TrySleep sleeps for the duration of the n'th try
func (p Policy) TrySleep(ctx context.Context, n int) error {
	return p.Sleep(ctx, p.Duration(n))
}

// Sleep sleeps for d, returning the context error if interrupted
func (p Policy) Sleep(ctx context.Context, d time.Duration) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// jitter returns a duration between 0.5 and 1.5 times millis
func jitter(millis int) time.Duration {
	if millis <= 0 {
		return 0
	}

	joff := millis / 2
	if joff == 0 {
		return time.Duration(millis) * time.Millisecond
	}

	return time.Duration(millis-joff+rand.IntN(2*joff+1)) * time.Millisecond
}
