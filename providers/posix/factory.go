// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package posix

import (
	"github.com/choria-io/bootstrap/internal/registry"
	"github.com/choria-io/bootstrap/model"
)

// Register registers this provider with the registry
func Register() {
	registry.MustRegister(&factory{})
}

type factory struct{}

func (p *factory) Name() string { return ProviderName }

func (p *factory) New(log model.Logger, runner model.CommandRunner) (model.StepProvider, error) {
	if runner == nil {
		log.Warn("factory called with no runner")
	}

	return NewPosixProvider(log, runner)
}

func (p *factory) IsManageable(_ map[string]any) (bool, int, error) {
	return true, 5, nil
}
