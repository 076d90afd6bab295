// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FailurePolicy", func() {
	It("Should default to continue on command failure and abort on path failure", func() {
		p := FailurePolicy{}
		Expect(p.StopOnCommandFailure()).To(BeFalse())
		Expect(p.AbortOnPathFailure()).To(BeTrue())
		Expect(p.WithDefaults()).To(Equal(DefaultFailurePolicy()))
	})

	It("Should honor explicit values", func() {
		p := FailurePolicy{CommandFailure: CommandFailureStop, PathFailure: PathFailureContinue}
		Expect(p.StopOnCommandFailure()).To(BeTrue())
		Expect(p.AbortOnPathFailure()).To(BeFalse())
		Expect(p.WithDefaults()).To(Equal(p))
	})

	DescribeTable("Validate",
		func(cmd, path string, valid bool) {
			err := FailurePolicy{CommandFailure: cmd, PathFailure: path}.Validate()
			if valid {
				Expect(err).ToNot(HaveOccurred())
			} else {
				Expect(err).To(MatchError(ErrInvalidPolicy))
			}
		},
		Entry("empty", "", "", true),
		Entry("all known", "stop", "continue", true),
		Entry("unknown command policy", "retry", "", false),
		Entry("unknown path policy", "", "ignore", false),
	)
})
