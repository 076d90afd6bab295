// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package manager

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/synadia-io/orbit.go/natscontext"

	"github.com/choria-io/bootstrap/internal/cmdrunner"
	"github.com/choria-io/bootstrap/internal/facts"
	iu "github.com/choria-io/bootstrap/internal/util"
	"github.com/choria-io/bootstrap/model"
	"github.com/choria-io/bootstrap/session"
	"github.com/choria-io/bootstrap/templates"
)

var _ model.Manager = (*Manager)(nil)

// Manager holds the root, loggers, session store, facts and data shared by every step in a run
type Manager struct {
	root        string
	session     model.SessionStore
	natsContext string
	publisher   session.Publisher
	nc          *nats.Conn
	log         model.Logger
	userLogger  model.Logger
	facts       map[string]any
	data        map[string]any
	environ     map[string]string
	environSet  bool

	mu sync.Mutex
}

// NewManager creates a manager, the root defaults to the current directory and sessions are kept in memory
func NewManager(log model.Logger, userLogger model.Logger, opts ...Option) (*Manager, error) {
	mgr := &Manager{log: log, userLogger: userLogger, data: map[string]any{}}

	for _, opt := range opts {
		err := opt(mgr)
		if err != nil {
			return nil, err
		}
	}

	if mgr.root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}

		err = WithRoot(cwd)(mgr)
		if err != nil {
			return nil, err
		}
	}

	if mgr.environ == nil {
		mgr.environ = environMap()
	}

	if mgr.session == nil {
		sessionLog, err := mgr.Logger("session", "memory")
		if err != nil {
			return nil, err
		}

		mgr.session, err = session.NewMemorySessionStore(sessionLog)
		if err != nil {
			return nil, err
		}
	}

	if mgr.publisher == nil && mgr.natsContext != "" {
		nc, _, err := natscontext.Connect(mgr.natsContext, nats.Name("Choria Bootstrap"))
		if err != nil {
			return nil, fmt.Errorf("could not connect to NATS context %s: %w", mgr.natsContext, err)
		}

		mgr.nc = nc
		mgr.publisher = nc
	}

	if mgr.publisher != nil {
		pubLog, err := mgr.Logger("session", "publisher")
		if err != nil {
			return nil, err
		}

		mgr.session, err = session.NewPublishingSessionStore(mgr.session, mgr.publisher, pubLog)
		if err != nil {
			return nil, err
		}
	}

	return mgr, nil
}

// Close releases the NATS connection if one was made
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.nc != nil {
		m.nc.Drain()
		m.nc = nil
	}
}

// Root is the absolute directory step directories resolve against
func (m *Manager) Root() string {
	return m.root
}

// Environment returns the environment exposed to templates
func (m *Manager) Environment() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.environ
}

// SetData stores the resolved batch data
func (m *Manager) SetData(data map[string]any) map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	if data == nil {
		data = map[string]any{}
	}

	m.data = iu.CloneMap(data)

	return data
}

// Data returns a copy of the resolved batch data
func (m *Manager) Data() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	return iu.CloneMap(m.data)
}

// SetFacts replaces the cached facts
func (m *Manager) SetFacts(facts map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.facts = facts
}

// MergeFacts deep merges facts over the system facts and caches the result
func (m *Manager) MergeFacts(ctx context.Context, facts map[string]any) (map[string]any, error) {
	sf, err := m.Facts(ctx)
	if err != nil {
		return nil, err
	}

	merged := iu.DeepMergeMap(iu.CloneMap(sf), facts)
	m.SetFacts(merged)

	return merged, nil
}

// FactsRaw returns the system facts as a JSON raw message
func (m *Manager) FactsRaw(ctx context.Context) (json.RawMessage, error) {
	f, err := m.Facts(ctx)
	if err != nil {
		return nil, err
	}

	return json.Marshal(f)
}

// Facts gathers the system facts once and returns the cached copy after that
func (m *Manager) Facts(ctx context.Context) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.facts != nil {
		return m.facts, nil
	}

	log := m.log.With("component", "facts")

	to, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	f, err := facts.StandardFacts(to, log)
	if err != nil {
		return nil, err
	}

	m.facts = f

	return m.facts, nil
}

// Logger creates a new logger with the provided key-value pairs added to the context
func (m *Manager) Logger(args ...any) (model.Logger, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("invalid logger arguments, must be key value pairs")
	}

	return m.log.With(args...), nil
}

// UserLogger is the logger used for output aimed at the person running the batch
func (m *Manager) UserLogger() model.Logger {
	return m.userLogger
}

// NewRunner creates a new command runner, children get the manager environment when one was set
func (m *Manager) NewRunner() (model.CommandRunner, error) {
	log, err := m.Logger("component", "runner")
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.environSet {
		return cmdrunner.NewCommandRunner(log)
	}

	return cmdrunner.NewCommandRunnerWithEnvironment(log, environList(m.environ))
}

// TemplateEnvironment is the environment templates and conditions are evaluated in
func (m *Manager) TemplateEnvironment(ctx context.Context) (*templates.Env, error) {
	f, err := m.Facts(ctx)
	if err != nil {
		return nil, err
	}

	return &templates.Env{
		Root:    m.root,
		Facts:   f,
		Data:    m.Data(),
		Environ: m.Environment(),
	}, nil
}

// StartSession starts a new session for b in the session store
func (m *Manager) StartSession(b model.Batch) (model.SessionStore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, fmt.Errorf("no session store available")
	}

	err := m.session.StartSession(m.root, b)
	if err != nil {
		return nil, err
	}

	return m.session, nil
}

// RecordEvent records event in the session store
func (m *Manager) RecordEvent(event model.SessionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return fmt.Errorf("no session store available")
	}

	if event == nil || event.SessionEventID() == "" {
		return fmt.Errorf("event id cannot be empty")
	}

	return m.session.RecordEvent(event)
}

// SessionSummary summarizes the latest session in the store
func (m *Manager) SessionSummary() (*model.RunSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, fmt.Errorf("no session store available")
	}

	events, err := m.session.AllEvents()
	if err != nil {
		return nil, err
	}

	return model.BuildRunSummary(events), nil
}

func cutEnv(e string) (string, string, bool) {
	k, v, ok := strings.Cut(e, "=")
	if !ok || k == "" {
		return "", "", false
	}

	return k, v, true
}

func environList(env map[string]string) []string {
	var res []string
	for k, v := range env {
		res = append(res, k+"="+v)
	}

	sort.Strings(res)

	return res
}
