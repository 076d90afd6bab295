// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"github.com/choria-io/bootstrap/internal/registry"
	iu "github.com/choria-io/bootstrap/internal/util"
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

	return NewShellProvider(log, runner)
}

func (p *factory) IsManageable(_ map[string]any) (bool, int, error) {
	return iu.FileExists(shellPath), 1, nil
}
