package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/alicebob/miniredis/v2"

	"github.com/seifreed/NSECGenerator/cache"
	"github.com/seifreed/NSECGenerator/helpertest"
	"github.com/seifreed/NSECGenerator/nsec3"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func run(args ...string) (string, error) {
	var out bytes.Buffer

	c := NewRootCommand()
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)

	err := c.Execute()

	return strings.TrimSpace(out.String()), err
}

var _ = Describe("root command", func() {
	var (
		tmpDir   *helpertest.TmpFolder
		wordlist string
		output   string
	)

	BeforeEach(func() {
		tmpDir = helpertest.NewTmpFolder("cmd")
		Expect(tmpDir.Error).Should(Succeed())
		DeferCleanup(tmpDir.Clean)

		wordlist = helpertest.TempWordlist("www", "mail", "", "api")
		output = tmpDir.JoinPath("output")
	})

	It("prints help", func() {
		_, err := run("help")
		Expect(err).Should(Succeed())
	})

	It("generates the table of one configuration", func() {
		out, err := run("-d", "example.com", "-w", wordlist, "-s", "AABBCCDD", "-i", "2", "-o", output, "-t", "2")
		Expect(err).Should(Succeed())

		expected := filepath.Join(output, nsec3.CacheFileName(nsec3.CacheKey("AABBCCDD", 2)))
		Expect(out).Should(Equal(expected))

		artifact, err := cache.LoadFile(expected)
		Expect(err).Should(Succeed())
		Expect(artifact.WordlistSize).Should(Equal(3))
		Expect(artifact.Hashes).Should(HaveLen(3))
		Expect(artifact.Hashes).Should(HaveKeyWithValue(
			nsec3.Hash("api.example.com", []byte{0xaa, 0xbb, 0xcc, 0xdd}, 2), "api.example.com"))
	})

	It("requires domain and wordlist", func() {
		_, err := run("-o", output)
		Expect(err).Should(MatchError(SatisfyAll(
			ContainSubstring("domain is required"),
			ContainSubstring("wordlist is required"))))
	})

	It("fails for a missing wordlist", func() {
		_, err := run("-d", "example.com", "-w", tmpDir.JoinPath("missing.txt"), "-o", output)
		Expect(err).Should(MatchError(ContainSubstring("can't load wordlist")))

		_, err = os.Stat(output)
		Expect(os.IsNotExist(err)).Should(BeTrue())
	})

	It("rejects unknown modes", func() {
		_, err := run("-d", "example.com", "-w", wordlist, "--mode", "binary")
		Expect(err).Should(HaveOccurred())
	})

	It("rejects invalid log levels", func() {
		_, err := run("-d", "example.com", "-w", wordlist, "-o", output, "--log-level", "loud")
		Expect(err).Should(MatchError(ContainSubstring("not a valid Level")))
	})

	When("a config file is used", func() {
		var cfgPath string

		BeforeEach(func() {
			f := tmpDir.CreateStringFile("config.yml",
				"domain: example.org",
				"wordlist: "+wordlist,
				"output: "+output,
				"salt: '01'",
				"iterations: 4",
				"log:",
				"  level: warn",
			)
			Expect(f.Error).Should(Succeed())

			cfgPath = f.Path
		})

		It("takes the values from the file", func() {
			out, err := run("-c", cfgPath)
			Expect(err).Should(Succeed())
			Expect(out).Should(Equal(filepath.Join(output, nsec3.CacheFileName(nsec3.CacheKey("01", 4)))))

			artifact, err := cache.LoadFile(out)
			Expect(err).Should(Succeed())
			Expect(artifact.Domain).Should(Equal("example.org"))
		})

		It("lets explicit flags win", func() {
			out, err := run("-c", cfgPath, "-s", "02", "-d", "example.net")
			Expect(err).Should(Succeed())
			Expect(out).Should(HaveSuffix(nsec3.CacheFileName(nsec3.CacheKey("02", 4))))

			artifact, err := cache.LoadFile(out)
			Expect(err).Should(Succeed())
			Expect(artifact.Domain).Should(Equal("example.net"))
		})

		It("reads the path from the environment", func() {
			os.Setenv(configFileEnvVar, cfgPath)
			DeferCleanup(func() { os.Unsetenv(configFileEnvVar) })

			out, err := run("cache-key")
			Expect(err).Should(Succeed())
			Expect(out).Should(Equal(nsec3.CacheFileName(nsec3.CacheKey("01", 4))))
		})

		It("mirrors the table to redis and writes metrics", func() {
			redisServer, err := miniredis.Run()
			Expect(err).Should(Succeed())
			DeferCleanup(redisServer.Close)

			textfile := tmpDir.JoinPath("nsec3gen.prom")

			f := tmpDir.CreateStringFile("mirror.yml",
				"domain: example.org",
				"wordlist: "+wordlist,
				"output: "+output,
				"redis:",
				"  address: "+redisServer.Addr(),
				"metrics:",
				"  textfile: "+textfile,
			)
			Expect(f.Error).Should(Succeed())

			_, err = run("-c", f.Path)
			Expect(err).Should(Succeed())

			Expect(redisServer.Exists("nsec3gen:cache:" + nsec3.CacheKey("", 0))).Should(BeTrue())

			data, err := os.ReadFile(textfile)
			Expect(err).Should(Succeed())
			Expect(string(data)).Should(ContainSubstring("nsec3gen_cache_files_written_total"))
		})

		It("fails if the redis mirror is unreachable", func() {
			f := tmpDir.CreateStringFile("mirror.yml",
				"domain: example.org",
				"wordlist: "+wordlist,
				"output: "+output,
				"redis:",
				"  address: 127.0.0.1:1",
				"  connectionAttempts: 1",
			)
			Expect(f.Error).Should(Succeed())

			_, err := run("-c", f.Path)
			Expect(err).Should(MatchError(ContainSubstring("can't connect to redis")))
		})
	})
})
