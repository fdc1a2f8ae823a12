package nsec3

import (
	"crypto/md5" //nolint:gosec
	"encoding/hex"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CacheKey", func() {
	It("should be the md5 of salt and iterations", func() {
		sum := md5.Sum([]byte("DEADBEEF_5")) //nolint:gosec

		Expect(CacheKey("DEADBEEF", 5)).Should(Equal(hex.EncodeToString(sum[:])))
	})

	It("should keep the salt text as given", func() {
		Expect(CacheKey("deadbeef", 5)).ShouldNot(Equal(CacheKey("DEADBEEF", 5)))
	})

	It("should build the cache file name", func() {
		name := CacheFileName(CacheKey("", 0))

		Expect(name).Should(MatchRegexp(`^nsec3_[0-9a-f]{32}\.json$`))
		Expect(name).Should(Equal(CacheFileName(CacheKey("", 0))))
	})

	It("should give every common configuration its own file", func() {
		pairs := []struct {
			salt       string
			iterations uint32
		}{
			{"", 0}, {"DEADBEEF", 5}, {"CAFEBABE", 10}, {"00", 0},
			{"AABBCCDD", 3}, {"12345678", 5}, {"FEDCBA98", 10}, {"FFFFFFFF", 15},
		}

		names := map[string]struct{}{}
		for _, p := range pairs {
			names[CacheFileName(CacheKey(p.salt, p.iterations))] = struct{}{}
		}

		Expect(names).Should(HaveLen(len(pairs)))
	})

	It("should separate wire mode tables", func() {
		Expect(WireCacheKey("AABBCCDD", 3)).ShouldNot(Equal(CacheKey("AABBCCDD", 3)))
	})
})
