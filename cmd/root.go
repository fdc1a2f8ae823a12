// Package cmd implements the nsec3gen command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seifreed/NSECGenerator/config"
	"github.com/seifreed/NSECGenerator/log"
)

//nolint:gochecknoglobals
var (
	version   = "undefined"
	buildTime = "undefined"
)

const configFileEnvVar = "NSEC3GEN_CONFIG_FILE"

// options holds the flag values, config file values are only overridden by flags set explicitly
type options struct {
	configPath string
	domain     string
	wordlist   string
	salt       string
	iterations uint32
	output     string
	threads    int
	mode       config.HashMode
	strict     bool
	logLevel   string
}

// NewRootCommand creates the command tree
func NewRootCommand() *cobra.Command {
	opts := &options{}

	c := &cobra.Command{
		Use:   "nsec3gen",
		Short: "nsec3gen precomputes NSEC3 hashes of wordlist names",
		Long: `Precomputes the NSEC3 hash of every name of a wordlist below a domain,
for one NSEC3 salt and iteration count, and stores the hash to name table
as JSON so zone walking tools can reverse NSEC3 hashes without hashing.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.generate(cmd)
		},
	}

	pf := c.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "",
		fmt.Sprintf("path to config file (or env %s)", configFileEnvVar))
	pf.StringVarP(&opts.domain, "domain", "d", "", "target domain, e.g. example.com")
	pf.StringVarP(&opts.wordlist, "wordlist", "w", "", "file with one subdomain label per line")
	pf.StringVarP(&opts.salt, "salt", "s", "", "NSEC3 salt as hex, empty for no salt")
	pf.Uint32VarP(&opts.iterations, "iterations", "i", 0, "additional NSEC3 hash iterations")
	pf.StringVarP(&opts.output, "output", "o", "output", "directory for the cache files")
	pf.IntVarP(&opts.threads, "threads", "t", 0, "number of hashing workers, 0 uses all CPUs")
	pf.Var(&opts.mode, "mode", "hash input: text (compatible) or wire (RFC 5155)")
	pf.BoolVar(&opts.strict, "strict", false, "fail if any preset of a batch fails")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level, overrides the config file")

	c.AddCommand(
		newGenerateCommonCommand(opts),
		newCacheKeyCommand(opts),
		newValidateCommand(opts),
		newVersionCommand(),
	)

	return c
}

// loadConfig reads the config file and applies the flags set on the command line
func (o *options) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = os.Getenv(configFileEnvVar)
	}

	cfg, err := config.NewConfig(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("domain") {
		cfg.Domain = o.domain
	}

	if flags.Changed("wordlist") {
		cfg.Wordlist = o.wordlist
	}

	if flags.Changed("salt") {
		cfg.Salt = o.salt
	}

	if flags.Changed("iterations") {
		cfg.Iterations = o.iterations
	}

	if flags.Changed("output") {
		cfg.Output = o.output
	}

	if flags.Changed("threads") {
		cfg.Workers = o.threads
	}

	if flags.Changed("mode") {
		cfg.Mode = o.mode
	}

	if flags.Changed("strict") {
		cfg.Strict = o.strict
	}

	if flags.Changed("log-level") {
		level, err := log.ParseLevel(o.logLevel)
		if err != nil {
			return nil, err
		}

		cfg.Log.Level = level
	}

	log.ConfigureLogger(cfg.Log)

	return cfg, nil
}

// Execute runs the command line and exits with 1 on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := NewRootCommand().ExecuteContext(ctx)

	stop()

	if err != nil {
		log.Log().Error(err)
		os.Exit(1)
	}
}
