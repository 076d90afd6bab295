// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"encoding/json"

	"github.com/choria-io/bootstrap/templates"
)

//go:generate mockgen -write_generate_directive -source manager.go -destination modelmocks/manager_mocks.go -package modelmocks

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

type Manager interface {
	// Root is the absolute directory all step directories resolve against, it never changes
	Root() string

	FactsRaw(ctx context.Context) (json.RawMessage, error)
	Facts(ctx context.Context) (map[string]any, error)
	Data() map[string]any
	SetData(data map[string]any) map[string]any
	Logger(args ...any) (Logger, error)
	UserLogger() Logger
	NewRunner() (CommandRunner, error)
	TemplateEnvironment(ctx context.Context) (*templates.Env, error)

	// session related

	StartSession(Batch) (SessionStore, error)
	RecordEvent(event SessionEvent) error
	SessionSummary() (*RunSummary, error)
}
