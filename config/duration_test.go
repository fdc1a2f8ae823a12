package config

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Duration", func() {
	var d Duration

	BeforeEach(func() {
		d = Duration(0)
	})

	Describe("UnmarshalText", func() {
		It("should parse duration with unit", func() {
			err := d.UnmarshalText([]byte("1m20s"))
			Expect(err).Should(Succeed())
			Expect(d).Should(Equal(Duration(80 * time.Second)))
			Expect(d.String()).Should(Equal("1 minute 20 seconds"))
		})

		It("should fail if duration is in wrong format", func() {
			err := d.UnmarshalText([]byte("wrong"))
			Expect(err).Should(MatchError("time: invalid duration \"wrong\""))
		})

		It("should reject numbers without unit", func() {
			Expect(d.UnmarshalText([]byte("5"))).ShouldNot(Succeed())
		})
	})

	Describe("IsAboveZero", func() {
		It("should be false for zero", func() {
			Expect(d.IsAboveZero()).Should(BeFalse())
		})

		It("should be true for positive values", func() {
			Expect(Duration(time.Second).IsAboveZero()).Should(BeTrue())
			Expect(Duration(time.Second).ToDuration()).Should(Equal(time.Second))
		})
	})
})
