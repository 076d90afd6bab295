// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package modelmocks

import (
	"go.uber.org/mock/gomock"

	"github.com/choria-io/bootstrap/templates"
)

// NewManager creates a manager mock rooted at root with permissive logger expectations
func NewManager(root string, facts map[string]any, data map[string]any, ctl *gomock.Controller) (*MockManager, *MockLogger) {
	logger := NewMockLogger(ctl)
	mgr := NewMockManager(ctl)

	mgr.EXPECT().Root().AnyTimes().Return(root)
	mgr.EXPECT().Logger(gomock.Any()).AnyTimes().Return(logger, nil)
	mgr.EXPECT().UserLogger().AnyTimes().Return(logger)
	mgr.EXPECT().Facts(gomock.Any()).AnyTimes().Return(facts, nil)
	mgr.EXPECT().Data().AnyTimes().Return(data)
	mgr.EXPECT().TemplateEnvironment(gomock.Any()).AnyTimes().DoAndReturn(func(any) (*templates.Env, error) {
		return &templates.Env{Root: root, Facts: facts, Data: data}, nil
	})

	logger.EXPECT().With(gomock.Any()).AnyTimes().Return(logger)
	logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any(), gomock.Any()).AnyTimes()

	return mgr, logger
}
