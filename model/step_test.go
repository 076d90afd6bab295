// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/choria-io/bootstrap/templates"
)

var _ = Describe("StepProperties", func() {
	Describe("Validate", func() {
		DescribeTable("validation tests",
			func(command string, retries int, env []string, timeout string, expected error) {
				prop := &StepProperties{
					Command:     command,
					Directory:   "./",
					Retries:     retries,
					Environment: env,
					Timeout:     timeout,
				}

				err := prop.Validate()
				if expected != nil {
					Expect(err).To(MatchError(ErrStepInvalid))
					Expect(err).To(MatchError(expected))
				} else {
					Expect(err).ToNot(HaveOccurred())
				}
			},

			Entry("valid simple command", "cargo build", 0, nil, "", nil),
			Entry("valid with retries", "npm i", 2, nil, "", nil),
			Entry("valid with environment", "npm i", 0, []string{"CI=true", "EMPTY="}, "", nil),
			Entry("valid with timeout", "npm i", 0, nil, "10m", nil),
			Entry("empty command", "", 0, nil, "", ErrCommandRequired),
			Entry("blank command", "   ", 0, nil, "", ErrCommandRequired),
			Entry("negative retries", "npm i", -1, nil, "", ErrInvalidRetries),
			Entry("environment without separator", "npm i", 0, []string{"CI"}, "", ErrInvalidEnvironment),
			Entry("environment without key", "npm i", 0, []string{"=true"}, "", ErrInvalidEnvironment),
		)

		It("Should reject invalid timeouts", func() {
			prop := &StepProperties{Command: "npm i", Timeout: "soon"}
			Expect(prop.Validate()).To(MatchError(ErrStepInvalid))
		})

		It("Should parse timeout into ParsedTimeout", func() {
			prop := &StepProperties{Command: "npm i", Timeout: "1h30m"}
			Expect(prop.Validate()).To(Succeed())
			Expect(prop.ParsedTimeout).To(Equal(90 * time.Minute))
		})

		It("Should skip validation when SkipValidate is true", func() {
			prop := &StepProperties{SkipValidate: true}
			Expect(prop.Validate()).To(Succeed())
		})
	})

	Describe("StepName and DisplayDirectory", func() {
		It("Should default to the command and root", func() {
			prop := &StepProperties{Command: "cargo build"}
			Expect(prop.StepName()).To(Equal("cargo build"))
			Expect(prop.DisplayDirectory()).To(Equal("./"))
		})

		It("Should use the name and directory when set", func() {
			prop := &StepProperties{Name: "kit", Command: "npm i", Directory: "./kit"}
			Expect(prop.StepName()).To(Equal("kit"))
			Expect(prop.DisplayDirectory()).To(Equal("./kit"))
		})
	})

	Describe("ResolveTemplates", func() {
		It("Should resolve command, directory, name and environment", func() {
			env := &templates.Env{Data: map[string]any{"dir": "./kit", "tool": "npm", "ci": "true"}}
			prop := &StepProperties{
				Name:        "{{ Data.tool }} install",
				Command:     "{{ Data.tool }} i",
				Directory:   "{{ Data.dir }}",
				Environment: []string{"CI={{ Data.ci }}"},
			}

			Expect(prop.ResolveTemplates(env)).To(Succeed())
			Expect(prop.Name).To(Equal("npm install"))
			Expect(prop.Command).To(Equal("npm i"))
			Expect(prop.Directory).To(Equal("./kit"))
			Expect(prop.Environment).To(Equal([]string{"CI=true"}))
		})

		It("Should fail on invalid expressions", func() {
			prop := &StepProperties{Command: "{{ invalid syntax }}"}
			Expect(prop.ResolveTemplates(&templates.Env{})).ToNot(Succeed())
		})
	})

	Describe("Clone", func() {
		It("Should not share the environment", func() {
			prop := &StepProperties{Command: "npm i", Environment: []string{"A=1"}}
			clone := prop.Clone()
			clone.Environment[0] = "A=2"
			clone.Command = "npm ci"

			Expect(prop.Environment).To(Equal([]string{"A=1"}))
			Expect(prop.Command).To(Equal("npm i"))
		})
	})

	Describe("ResolveDirectory", func() {
		var root string

		BeforeEach(func() {
			root = GinkgoT().TempDir()
			Expect(os.MkdirAll(filepath.Join(root, "kit"), 0755)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(root, "file"), []byte("x"), 0644)).To(Succeed())
		})

		It("Should resolve relative to the root", func() {
			prop := &StepProperties{Command: "npm i", Directory: "./kit"}
			resolved, err := prop.ResolveDirectory(root)
			Expect(err).ToNot(HaveOccurred())
			Expect(resolved).To(Equal(filepath.Join(root, "kit")))
		})

		It("Should treat an empty directory as the root", func() {
			prop := &StepProperties{Command: "cargo build"}
			resolved, err := prop.ResolveDirectory(root)
			Expect(err).ToNot(HaveOccurred())
			Expect(resolved).To(Equal(filepath.Clean(root)))
		})

		It("Should use absolute directories as is", func() {
			other := GinkgoT().TempDir()
			prop := &StepProperties{Command: "ls", Directory: other}
			resolved, err := prop.ResolveDirectory(root)
			Expect(err).ToNot(HaveOccurred())
			Expect(resolved).To(Equal(filepath.Clean(other)))
		})

		It("Should fail for missing directories", func() {
			prop := &StepProperties{Command: "npm i", Directory: "./emulator"}
			resolved, err := prop.ResolveDirectory(root)
			Expect(err).To(MatchError(ErrInvalidDirectory))
			Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
			Expect(resolved).To(Equal(filepath.Join(root, "emulator")))

			var perr *PathError
			Expect(errors.As(err, &perr)).To(BeTrue())
			Expect(perr.Directory).To(Equal("./emulator"))
		})

		It("Should fail for files", func() {
			prop := &StepProperties{Command: "npm i", Directory: "file"}
			_, err := prop.ResolveDirectory(root)
			Expect(err).To(MatchError(ErrInvalidDirectory))
			Expect(err.Error()).To(ContainSubstring("not a directory"))
		})

		It("Should require an absolute root", func() {
			prop := &StepProperties{Command: "npm i", Directory: "kit"}
			_, err := prop.ResolveDirectory("relative")
			Expect(err).To(MatchError(ErrRootNotAbsolute))
		})
	})

	Describe("Yaml", func() {
		It("Should round trip through yaml", func() {
			prop := &StepProperties{Name: "kit", Command: "npm i", Directory: "./kit", Retries: 1, If: "true"}
			raw, err := prop.ToYamlManifest()
			Expect(err).ToNot(HaveOccurred())

			parsed, err := NewStepPropertiesFromYaml(raw)
			Expect(err).ToNot(HaveOccurred())
			Expect(parsed).To(Equal(prop))
		})

		It("Should fail on invalid yaml", func() {
			_, err := NewStepPropertiesFromYaml(yaml.RawMessage("command: [x"))
			Expect(err).To(HaveOccurred())
		})
	})
})
