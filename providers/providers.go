// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package providers registers the step providers with the registry
package providers

import (
	"sync"

	"github.com/choria-io/bootstrap/providers/posix"
	"github.com/choria-io/bootstrap/providers/shell"
)

var once sync.Once

// RegisterAll registers every step provider, safe to call more than once
func RegisterAll() {
	once.Do(func() {
		shell.Register()
		posix.Register()
	})
}
