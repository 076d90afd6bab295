// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/adrg/xdg"
	"github.com/choria-io/appbuilder/builder"
	"github.com/choria-io/appbuilder/commands/exec"
	"github.com/choria-io/appbuilder/commands/parent"
	"github.com/choria-io/fisk"

	iu "github.com/choria-io/bootstrap/internal/util"
	"github.com/choria-io/bootstrap/providers"
)

var (
	ctx     context.Context
	debug   bool
	info    bool
	logJSON bool
	Version = "development"
)

func main() {
	app := fisk.New("bootstrap", "Choria Workspace Bootstrap")
	app.Version(Version)
	app.Author("https://choria.io")

	app.Flag("debug", "Enable debug logging").UnNegatableBoolVar(&debug)
	app.Flag("info", "Enable info logging").UnNegatableBoolVar(&info)
	app.Flag("log-json", "Log in JSON format").UnNegatableBoolVar(&logJSON)

	providers.RegisterAll()

	registerRunCommand(app)
	registerRenderCommand(app)
	registerListCommand(app)
	registerDataCommand(app)
	registerPresetsCommand(app)
	registerFactsCommand(app)
	registerSessionCommand(app)

	ctx, _ = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := extendCli(app)
	if err != nil {
		log.Fatalf("Could not load CLI extensions: %s", err)
	}

	app.MustParseWithUsage(os.Args[1:])
}

func extendCli(app *fisk.Application) error {
	var path string
	var userFile = filepath.Join(xdg.ConfigHome, "choria", "bootstrap", "cli-extension.yaml")
	var systemFile = "/etc/choria/bootstrap/cli-extension.yaml"

	switch {
	case xdg.ConfigHome != "" && iu.FileExists(userFile):
		path = userFile
	case iu.FileExists(systemFile):
		path = systemFile
	default:
		return nil
	}

	def, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	parent.MustRegister()
	exec.MustRegister()

	ext := app.Command("plugin", "External CLI plugin commands").Alias("ext")

	return builder.MountAsCommand(ctx, ext, def, nil)
}
