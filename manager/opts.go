// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package manager

import (
	"fmt"
	"os"
	"path/filepath"

	iu "github.com/choria-io/bootstrap/internal/util"
	"github.com/choria-io/bootstrap/model"
	"github.com/choria-io/bootstrap/session"
)

// Option is a functional option for configuring the manager
type Option func(*Manager) error

// WithRoot sets the directory all step directories resolve against, relative paths are made absolute once
func WithRoot(dir string) Option {
	return func(m *Manager) error {
		if dir == "" {
			return fmt.Errorf("%w: root is required", model.ErrInvalidDirectory)
		}

		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}

		if !iu.IsDirectory(abs) {
			return fmt.Errorf("%w: root %s is not a directory", model.ErrInvalidDirectory, abs)
		}

		m.root = abs

		return nil
	}
}

// WithSessionDirectory stores session events in path so later runs can resume
func WithSessionDirectory(path string) Option {
	return func(m *Manager) error {
		log, err := m.Logger("session", "directory", "path", path)
		if err != nil {
			return err
		}

		sess, err := session.NewDirectorySessionStore(path, log)
		if err != nil {
			return err
		}

		m.session = sess

		return nil
	}
}

// WithNatsContext publishes session events to NATS using the named context
func WithNatsContext(context string) Option {
	return func(m *Manager) error {
		m.natsContext = context
		return nil
	}
}

// WithPublisher publishes session events using pub rather than connecting to NATS
func WithPublisher(pub session.Publisher) Option {
	return func(m *Manager) error {
		m.publisher = pub
		return nil
	}
}

// WithEnvironmentData sets the environment exposed to templates and passed to commands
func WithEnvironmentData(env map[string]string) Option {
	return func(m *Manager) error {
		if env == nil {
			env = map[string]string{}
		}

		m.environ = env
		m.environSet = true

		return nil
	}
}

// WithFacts sets the facts, system facts are not gathered
func WithFacts(facts map[string]any) Option {
	return func(m *Manager) error {
		m.facts = facts
		return nil
	}
}

func environMap() map[string]string {
	env := map[string]string{}
	for _, e := range os.Environ() {
		k, v, ok := cutEnv(e)
		if ok {
			env[k] = v
		}
	}

	return env
}
