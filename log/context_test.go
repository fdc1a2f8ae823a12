package log

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

var _ = Describe("Context logger", func() {
	It("should fall back to the global logger", func() {
		entry := FromCtx(context.Background())

		Expect(entry.Logger).Should(BeIdenticalTo(Log()))
	})

	It("should carry fields through the context", func() {
		ctx, entry := CtxWithFields(context.Background(), logrus.Fields{"run": "abc"})

		Expect(entry.Data).Should(HaveKeyWithValue("run", "abc"))
		Expect(FromCtx(ctx).Data).Should(HaveKeyWithValue("run", "abc"))
		Expect(FromCtx(ctx).Context).Should(Equal(ctx))
	})
})
