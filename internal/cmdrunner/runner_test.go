// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package cmdrunner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/choria-io/bootstrap/model"
	"github.com/choria-io/bootstrap/model/modelmocks"
)

func TestCmdRunner(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Internal/CmdRunner")
}

var _ = Describe("CommandRunner", func() {
	var (
		mockctl *gomock.Controller
		logger  *modelmocks.MockLogger
		runner  *CommandRunner
		ctx     context.Context
		cancel  context.CancelFunc
	)

	BeforeEach(func() {
		if runtime.GOOS == "windows" {
			Skip("requires a posix shell")
		}

		mockctl = gomock.NewController(GinkgoT())
		logger = modelmocks.NewMockLogger(mockctl)
		logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

		var err error
		runner, err = NewCommandRunnerWithEnvironment(logger, []string{"PATH=/usr/bin:/bin", "BASE=base"})
		Expect(err).ToNot(HaveOccurred())

		ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		DeferCleanup(cancel)
	})

	It("Should require a command", func() {
		_, _, _, err := runner.ExecuteWithOptions(ctx, model.ExtendedExecOptions{})
		Expect(err).To(MatchError("command not specified"))
	})

	It("Should capture stdout and exit code 0", func() {
		stdout, stderr, code, err := runner.Execute(ctx, "/bin/sh", "-c", "echo hello")
		Expect(err).ToNot(HaveOccurred())
		Expect(string(stdout)).To(Equal("hello\n"))
		Expect(stderr).To(BeEmpty())
		Expect(code).To(Equal(0))
	})

	It("Should return non zero exit codes without an error", func() {
		stdout, stderr, code, err := runner.Execute(ctx, "/bin/sh", "-c", "echo out; echo oops >&2; exit 3")
		Expect(err).ToNot(HaveOccurred())
		Expect(string(stdout)).To(Equal("out\n"))
		Expect(string(stderr)).To(Equal("oops\n"))
		Expect(code).To(Equal(3))
	})

	It("Should run in the requested directory", func() {
		dir := GinkgoT().TempDir()
		Expect(os.MkdirAll(filepath.Join(dir, "kit"), 0755)).To(Succeed())

		stdout, _, _, err := runner.ExecuteWithOptions(ctx, model.ExtendedExecOptions{
			Command: "/bin/sh",
			Args:    []string{"-c", "pwd -P"},
			Cwd:     filepath.Join(dir, "kit"),
		})
		Expect(err).ToNot(HaveOccurred())

		expected, err := filepath.EvalSymlinks(filepath.Join(dir, "kit"))
		Expect(err).ToNot(HaveOccurred())
		Expect(strings.TrimSpace(string(stdout))).To(Equal(expected))
	})

	It("Should not change the working directory of the process", func() {
		before, err := os.Getwd()
		Expect(err).ToNot(HaveOccurred())

		_, _, _, err = runner.ExecuteWithOptions(ctx, model.ExtendedExecOptions{Command: "/bin/sh", Args: []string{"-c", "true"}, Cwd: GinkgoT().TempDir()})
		Expect(err).ToNot(HaveOccurred())

		after, err := os.Getwd()
		Expect(err).ToNot(HaveOccurred())
		Expect(after).To(Equal(before))
	})

	It("Should append the step environment to the base environment", func() {
		stdout, _, _, err := runner.ExecuteWithOptions(ctx, model.ExtendedExecOptions{
			Command:     "/bin/sh",
			Args:        []string{"-c", "echo $BASE-$EXTRA"},
			Environment: []string{"EXTRA=extra"},
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(string(stdout)).To(Equal("base-extra\n"))
	})

	It("Should fail for commands that cannot be started", func() {
		_, _, _, err := runner.Execute(ctx, "/nonexistent/command")
		Expect(err).To(HaveOccurred())
	})

	It("Should kill commands that exceed the timeout", func() {
		start := time.Now()
		_, _, code, err := runner.ExecuteWithOptions(ctx, model.ExtendedExecOptions{
			Command: "/bin/sh",
			Args:    []string{"-c", "sleep 10"},
			Timeout: 100 * time.Millisecond,
		})
		Expect(err).To(MatchError(context.DeadlineExceeded))
		Expect(code).To(Equal(-1))
		Expect(time.Since(start)).To(BeNumerically("<", 5*time.Second))
	})
})
