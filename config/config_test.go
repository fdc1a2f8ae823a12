package config

import (
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/seifreed/NSECGenerator/helpertest"
	"github.com/seifreed/NSECGenerator/log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	var tmpDir *helpertest.TmpFolder

	suiteBeforeEach()

	BeforeEach(func() {
		tmpDir = helpertest.NewTmpFolder("config")
		Expect(tmpDir.Error).Should(Succeed())
		DeferCleanup(tmpDir.Clean)
	})

	writeConfig := func(lines ...string) string {
		f := tmpDir.CreateStringFile("config.yml", lines...)
		Expect(f.Error).Should(Succeed())

		return f.Path
	}

	Describe("NewConfig", func() {
		When("no file is given", func() {
			It("returns the defaults", func() {
				cfg, err := NewConfig("")
				Expect(err).Should(Succeed())

				Expect(cfg.Salt).Should(BeEmpty())
				Expect(cfg.Iterations).Should(BeZero())
				Expect(cfg.Mode).Should(Equal(HashModeText))
				Expect(cfg.Output).Should(Equal("output"))
				Expect(cfg.Workers).Should(BeZero())
				Expect(cfg.Strict).Should(BeFalse())
				Expect(cfg.Presets).Should(Equal(DefaultPresets()))
				Expect(cfg.Log.Level).Should(Equal(log.LevelInfo))
				Expect(cfg.Log.Format).Should(Equal(log.FormatTypeText))
				Expect(cfg.Log.Timestamp).Should(BeTrue())
				Expect(cfg.Redis.ConnectionAttempts).Should(Equal(3))
				Expect(cfg.Redis.IsEnabled()).Should(BeFalse())
				Expect(cfg.Database.Type).Should(Equal(DatabaseTypeNone))
				Expect(cfg.Database.BatchSize).Should(Equal(1000))
				Expect(cfg.Metrics.IsEnabled()).Should(BeFalse())
			})
		})

		When("a file is given", func() {
			It("overlays the defaults", func() {
				path := writeConfig(
					"domain: example.com",
					"wordlist: words.txt",
					"salt: AABBCCDD",
					"iterations: 12",
					"mode: wire",
					"workers: 4",
					"log:",
					"  level: debug",
					"  format: json",
					"redis:",
					"  address: localhost:6379",
					"  ttl: 1h",
					"database:",
					"  type: sqlite",
					"  target: hashes.db",
					"presets:",
					"  - name: custom",
					"    salt: '01'",
					"    iterations: 1",
				)

				cfg, err := NewConfig(path)
				Expect(err).Should(Succeed())

				Expect(cfg.Domain).Should(Equal("example.com"))
				Expect(cfg.Wordlist).Should(Equal("words.txt"))
				Expect(cfg.Salt).Should(Equal("AABBCCDD"))
				Expect(cfg.Iterations).Should(BeEquivalentTo(12))
				Expect(cfg.Mode).Should(Equal(HashModeWire))
				Expect(cfg.Workers).Should(Equal(4))
				Expect(cfg.Output).Should(Equal("output"))
				Expect(cfg.Log.Level).Should(Equal(log.LevelDebug))
				Expect(cfg.Log.Format).Should(Equal(log.FormatTypeJSON))
				Expect(cfg.Redis.Address).Should(Equal("localhost:6379"))
				Expect(cfg.Redis.TTL.String()).Should(Equal("1 hour"))
				Expect(cfg.Redis.ConnectionAttempts).Should(Equal(3))
				Expect(cfg.Database.Type).Should(Equal(DatabaseTypeSqlite))
				Expect(cfg.Presets).Should(Equal([]Preset{{Name: "custom", Salt: "01", Iterations: 1}}))
			})
		})

		When("the file has unknown keys", func() {
			It("fails", func() {
				_, err := NewConfig(writeConfig("domain: example.com", "unknown: 1"))
				Expect(err).Should(HaveOccurred())
				Expect(err.Error()).Should(ContainSubstring("wrong file structure"))
			})
		})

		When("an enum value is invalid", func() {
			It("fails", func() {
				_, err := NewConfig(writeConfig("mode: binary"))
				Expect(err).Should(HaveOccurred())
				Expect(err.Error()).Should(ContainSubstring("binary is not a valid HashMode"))
			})
		})

		When("the file is missing", func() {
			It("fails", func() {
				_, err := NewConfig(tmpDir.JoinPath("missing.yml"))
				Expect(err).Should(HaveOccurred())
				Expect(err.Error()).Should(HavePrefix("can't read config file"))
			})
		})
	})

	Describe("Validate", func() {
		var cfg *Config

		BeforeEach(func() {
			var err error

			cfg, err = NewConfig("")
			Expect(err).Should(Succeed())

			cfg.Domain = "example.com"
			cfg.Wordlist = "words.txt"
		})

		It("accepts a complete configuration", func() {
			Expect(cfg.Validate()).Should(Succeed())
		})

		It("reports every problem at once", func() {
			cfg.Domain = ""
			cfg.Wordlist = ""
			cfg.Workers = -1

			err := cfg.Validate()
			Expect(err).Should(HaveOccurred())

			var merr *multierror.Error
			Expect(err).Should(BeAssignableToTypeOf(merr))
			Expect(err.(*multierror.Error).Errors).Should(HaveLen(3))
			Expect(err.Error()).Should(SatisfyAll(
				ContainSubstring("domain is required"),
				ContainSubstring("wordlist is required"),
				ContainSubstring("workers must not be negative")))
		})

		It("rejects invalid domain names", func() {
			cfg.Domain = strings.Repeat("a", 64) + ".com"

			Expect(cfg.Validate()).Should(MatchError(ContainSubstring("is not a valid domain name")))
		})

		It("limits iterations in wire mode", func() {
			cfg.Mode = HashModeWire
			cfg.Iterations = 70000

			Expect(cfg.Validate()).Should(MatchError(ContainSubstring("exceed 65535 allowed in wire mode")))

			cfg.Mode = HashModeText
			Expect(cfg.Validate()).Should(Succeed())
		})

		It("checks preset iterations in wire mode", func() {
			cfg.Mode = HashModeWire
			cfg.Presets = append(cfg.Presets, Preset{Name: "huge", Iterations: 1 << 20})

			Expect(cfg.Validate()).Should(MatchError(ContainSubstring("preset 'huge'")))
		})

		It("requires preset names", func() {
			cfg.Presets = []Preset{{Salt: "00"}}

			Expect(cfg.Validate()).Should(MatchError(ContainSubstring("preset #1 has no name")))
		})

		It("requires a database target", func() {
			cfg.Database.Type = DatabaseTypeSqlite

			Expect(cfg.Validate()).Should(MatchError(ContainSubstring("requires a target")))
		})
	})

	Describe("DefaultPresets", func() {
		It("returns the provider presets in order", func() {
			presets := DefaultPresets()

			Expect(presets).Should(HaveLen(8))
			Expect(presets[0]).Should(Equal(Preset{Name: "No salt, no iterations"}))
			Expect(presets[1]).Should(Equal(Preset{Name: "Google Cloud DNS", Salt: "DEADBEEF", Iterations: 5}))
			Expect(presets[7]).Should(Equal(Preset{Name: "Very high security", Salt: "FFFFFFFF", Iterations: 15}))
		})

		It("returns a fresh slice every time", func() {
			presets := DefaultPresets()
			presets[0].Name = "changed"

			Expect(DefaultPresets()[0].Name).Should(Equal("No salt, no iterations"))
		})
	})

	Describe("LogConfig", func() {
		It("logs values and disabled sections", func() {
			cfg, err := NewConfig("")
			Expect(err).Should(Succeed())

			cfg.Domain = "example.com"
			cfg.Redis.Address = "localhost:6379"
			cfg.Redis.Password = "secret"

			cfg.LogConfig(logger)

			Expect(hook.Messages).Should(SatisfyAll(
				ContainElement("domain: example.com"),
				ContainElement("mode: text"),
				ContainElement("workers: auto"),
				ContainElement("redis:"),
				ContainElement("password: ******"),
				ContainElement("database: disabled"),
				ContainElement("metrics: disabled"),
			))
		})
	})
})
