package lists

import (
	"context"
	"os"

	"github.com/seifreed/NSECGenerator/helpertest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ReadWordlist", func() {
	var (
		ctx    context.Context
		tmpDir *helpertest.TmpFolder
	)

	BeforeEach(func() {
		ctx = context.Background()

		tmpDir = helpertest.NewTmpFolder("lists")
		Expect(tmpDir.Error).Should(Succeed())
		DeferCleanup(tmpDir.Clean)
	})

	It("returns trimmed labels and skips blank lines", func() {
		file := tmpDir.CreateStringFile("words.txt", " www ", "", "mail\t", "   ", "api")
		Expect(file.Error).Should(Succeed())

		labels, err := ReadWordlist(ctx, file.Path)
		Expect(err).Should(Succeed())
		Expect(labels).Should(Equal([]string{"www", "mail", "api"}))
	})

	It("keeps duplicates", func() {
		labels, err := ReadWordlist(ctx, helpertest.TempWordlist("www", "www"))
		Expect(err).Should(Succeed())
		Expect(labels).Should(HaveLen(2))
	})

	It("returns an empty list for an empty file", func() {
		labels, err := ReadWordlist(ctx, helpertest.TempWordlist())
		Expect(err).Should(Succeed())
		Expect(labels).Should(BeEmpty())
	})

	When("the file does not exist", func() {
		It("fails", func() {
			_, err := ReadWordlist(ctx, tmpDir.JoinPath("missing.txt"))
			Expect(err).Should(MatchError(os.ErrNotExist))
			Expect(err.Error()).Should(ContainSubstring("can't open wordlist"))
		})
	})

	When("context is cancelled", func() {
		It("stops reading", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := ReadWordlist(cctx, helpertest.TempWordlist("www"))
			Expect(err).Should(MatchError(context.Canceled))
		})
	})
})
