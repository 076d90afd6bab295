// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/SladkyCitron/slogcolor"
	"github.com/choria-io/fisk"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/choria-io/bootstrap/batch"
	"github.com/choria-io/bootstrap/manager"
	"github.com/choria-io/bootstrap/model"
)

// batchSelection are the flags shared by commands that load a batch
type batchSelection struct {
	file   string
	preset string
	root   string
	data   map[string]string
	facts  map[string]string
}

func (s *batchSelection) addFlags(cmd *fisk.CmdClause) {
	s.data = map[string]string{}
	s.facts = map[string]string{}

	cmd.Arg("batch", "Batch file to use, .jet files are rendered first").ExistingFileVar(&s.file)
	cmd.Flag("preset", "Use a built in batch").Short('p').HintAction(batch.Presets).StringVar(&s.preset)
	cmd.Flag("root", "Directory step directories are relative to").Default(".").ExistingDirVar(&s.root)
	cmd.Flag("data", "Overrides batch data").PlaceHolder("KEY=VALUE").StringMapVar(&s.data)
	cmd.Flag("fact", "Overrides system facts").PlaceHolder("KEY=VALUE").StringMapVar(&s.facts)
}

// resolve loads the selected batch, the setup preset is used when nothing is selected
func (s *batchSelection) resolve(mgr *manager.Manager, opts ...batch.Option) (*batch.Batch, error) {
	if s.file != "" && s.preset != "" {
		return nil, fmt.Errorf("a batch file and a preset can not both be used")
	}

	if len(s.facts) > 0 {
		_, err := mgr.MergeFacts(ctx, nestedMap(s.facts))
		if err != nil {
			return nil, err
		}
	}

	if len(s.data) > 0 {
		opts = append(opts, batch.WithOverridingData(nestedMap(s.data)))
	}

	if s.file != "" {
		return batch.ResolveFile(ctx, mgr, s.file, opts...)
	}

	preset := s.preset
	if preset == "" {
		preset = "setup"
	}

	return batch.ResolvePreset(ctx, mgr, preset, opts...)
}

// nestedMap turns dotted keys like host.info.os into nested maps
func nestedMap(flat map[string]string) map[string]any {
	res := map[string]any{}

	for k, v := range flat {
		parts := strings.Split(k, ".")
		cur := res
		for _, p := range parts[:len(parts)-1] {
			next, ok := cur[p].(map[string]any)
			if !ok {
				next = map[string]any{}
				cur[p] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = v
	}

	return res
}

func newManager(root string, opts ...manager.Option) (*manager.Manager, model.Logger, error) {
	logger := newLogger()
	out := newOutputLogger()

	if root != "" {
		opts = append([]manager.Option{manager.WithRoot(root)}, opts...)
	}

	mgr, err := manager.NewManager(logger, out, opts...)
	if err != nil {
		return nil, nil, err
	}

	return mgr, out, nil
}

func logLevel(def slog.Level) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case info:
		return slog.LevelInfo
	default:
		return def
	}
}

func newOutputLogger() model.Logger {
	level := logLevel(slog.LevelInfo)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return manager.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
	}

	return manager.NewSlogLogger(slog.New(slogcolor.NewHandler(os.Stdout, &slogcolor.Options{Level: level})))
}

func newLogger() model.Logger {
	level := logLevel(slog.LevelWarn)

	if logJSON {
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.JSONFormatter{})

		switch level {
		case slog.LevelDebug:
			logger.SetLevel(logrus.DebugLevel)
		case slog.LevelInfo:
			logger.SetLevel(logrus.InfoLevel)
		default:
			logger.SetLevel(logrus.WarnLevel)
		}

		return manager.NewLogrusLogger(logrus.NewEntry(logger))
	}

	return manager.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
