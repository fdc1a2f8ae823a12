package helpertest

import (
	"fmt"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/onsi/gomega/types"
)

// HashPattern matches a text mode NSEC3 hash
const HashPattern = `^[a-z2-7]{32}$`

// Labels returns n distinct wordlist labels
func Labels(n int) []string {
	res := make([]string, n)
	for i := range res {
		res[i] = fmt.Sprintf("host%d", i)
	}

	return res
}

// BeNSEC3Hash checks that the actual string looks like a text mode hash
func BeNSEC3Hash() types.GomegaMatcher {
	return gomega.MatchRegexp(HashPattern)
}

// TempWordlist writes the labels into a fresh temp folder, removed after the test
func TempWordlist(labels ...string) string {
	tmpDir := NewTmpFolder("wordlist")
	gomega.Expect(tmpDir.Error).Should(gomega.Succeed())
	ginkgo.DeferCleanup(tmpDir.Clean)

	file := tmpDir.CreateStringFile("wordlist.txt", labels...)
	gomega.Expect(file.Error).Should(gomega.Succeed())

	return file.Path
}
