// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/choria-io/fisk"

	iu "github.com/choria-io/bootstrap/internal/util"
	"github.com/choria-io/bootstrap/manager"
)

type sessionCmd struct {
	sessionStore string
}

func registerSessionCommand(app *fisk.Application) {
	cmd := &sessionCmd{}

	sess := app.Command("session", "Manage session stores")

	newAction := sess.Command("new", "Creates a new session store").Alias("start").Action(cmd.newAction)
	newAction.Flag("directory", "Directory to store the session in").StringVar(&cmd.sessionStore)

	reportAction := sess.Command("report", "Report on the latest session").Action(cmd.reportAction)
	reportAction.Flag("session", "Session store to use").Envar("BOOTSTRAP_SESSION_STORE").StringVar(&cmd.sessionStore)
}

func (c *sessionCmd) reportAction(_ *fisk.ParseContext) error {
	if c.sessionStore == "" {
		return fmt.Errorf("no session store specified")
	}

	if !iu.IsDirectory(c.sessionStore) {
		return fmt.Errorf("session store %s does not exist", c.sessionStore)
	}

	mgr, err := manager.NewManager(newLogger(), newOutputLogger(), manager.WithSessionDirectory(c.sessionStore))
	if err != nil {
		return err
	}

	summary, err := mgr.SessionSummary()
	if err != nil {
		return err
	}

	showSummary("Session Summary", summary)

	return nil
}

func (c *sessionCmd) newAction(_ *fisk.ParseContext) error {
	var err error

	if c.sessionStore == "" {
		c.sessionStore, err = os.MkdirTemp("", "bootstrap-session-*")
		if err != nil {
			return err
		}
	} else if iu.IsDirectory(c.sessionStore) {
		return fmt.Errorf("session store %s already exists", c.sessionStore)
	}

	fmt.Printf("export BOOTSTRAP_SESSION_STORE=%v\n", c.sessionStore)

	return nil
}
