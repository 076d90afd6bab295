// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package manager

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/choria-io/bootstrap/model"
)

var _ model.Logger = (*LogrusLogger)(nil)

// LogrusLogger adapts a logrus entry to model.Logger, used for JSON formatted logs
type LogrusLogger struct {
	log *logrus.Entry
}

// NewLogrusLogger wraps log
func NewLogrusLogger(log *logrus.Entry) *LogrusLogger {
	return &LogrusLogger{log: log}
}

func (s *LogrusLogger) fields(args ...any) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		if i+1 == len(args) {
			fields["!BADKEY"] = args[i]
			break
		}

		fields[key] = args[i+1]
	}

	return fields
}

func (s *LogrusLogger) Debug(msg string, args ...any) {
	s.log.WithFields(s.fields(args...)).Debug(msg)
}

func (s *LogrusLogger) Info(msg string, args ...any) {
	s.log.WithFields(s.fields(args...)).Info(msg)
}

func (s *LogrusLogger) Warn(msg string, args ...any) {
	s.log.WithFields(s.fields(args...)).Warn(msg)
}

func (s *LogrusLogger) Error(msg string, args ...any) {
	s.log.WithFields(s.fields(args...)).Error(msg)
}

func (s *LogrusLogger) With(args ...any) model.Logger {
	return NewLogrusLogger(s.log.WithFields(s.fields(args...)))
}
