package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/seifreed/NSECGenerator/cache"
	"github.com/seifreed/NSECGenerator/config"
	"github.com/seifreed/NSECGenerator/engine"
	"github.com/seifreed/NSECGenerator/evt"
	"github.com/seifreed/NSECGenerator/generator"
	"github.com/seifreed/NSECGenerator/log"
	"github.com/seifreed/NSECGenerator/metrics"
)

func newGenerateCommonCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "generate-common",
		Aliases: []string{"common"},
		Args:    cobra.NoArgs,
		Short:   "Generates tables for the common NSEC3 configurations of DNS providers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.generateCommon(cmd)
		},
	}
}

func (o *options) generate(cmd *cobra.Command) error {
	cfg, err := o.prepare(cmd)
	if err != nil {
		return err
	}

	return withGenerator(cmd.Context(), cfg, func(ctx context.Context, gen *generator.Generator) error {
		res, err := gen.Run(ctx, cfg.Domain, cfg.Wordlist, generator.Params{Salt: cfg.Salt, Iterations: cfg.Iterations})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), res.Location.Target)

		return nil
	})
}

func (o *options) generateCommon(cmd *cobra.Command) error {
	cfg, err := o.prepare(cmd)
	if err != nil {
		return err
	}

	return withGenerator(cmd.Context(), cfg, func(ctx context.Context, gen *generator.Generator) error {
		batch, err := gen.RunAll(ctx, cfg.Domain, cfg.Wordlist, cfg.Presets)
		if err != nil {
			return err
		}

		printBatch(cmd.OutOrStdout(), batch)

		if cfg.Strict {
			if err := batch.Err(); err != nil {
				return fmt.Errorf("%d of %d presets failed: %w", len(batch.Failed), len(cfg.Presets), err)
			}
		}

		return nil
	})
}

func (o *options) prepare(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.LogConfig(log.PrefixedLog("config"))

	return cfg, nil
}

func printBatch(w io.Writer, batch *generator.BatchResult) {
	for _, res := range batch.Results {
		fmt.Fprintf(w, "%-24s %s\n", res.Params.Name, res.Location.Target)
	}

	for _, f := range batch.Failed {
		fmt.Fprintf(w, "%-24s FAILED: %v\n", f.Params.Name, f.Err)
	}
}

// withGenerator wires stores, engine and metrics for cfg and releases them after fn
func withGenerator(ctx context.Context, cfg *config.Config,
	fn func(context.Context, *generator.Generator) error,
) (rerr error) {
	if cfg.Metrics.IsEnabled() {
		metrics.StartCollection()

		defer func() {
			if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
				rerr = multierror.Append(rerr, err).ErrorOrNil()
			}
		}()
	}

	generator.RegisterProgressLogger()

	evt.Bus().Publish(evt.ApplicationStarted, version, buildTime)

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	defer func() {
		if err := store.Close(); err != nil {
			log.PrefixedLog("cache").Warn("can't close stores: ", err)
		}
	}()

	eng := engine.New(cfg.Workers, engine.WithHashFunc(generator.HashFuncFor(cfg.Mode)))

	return fn(ctx, generator.New(eng, store, cfg.Mode))
}

func newStore(ctx context.Context, cfg *config.Config) (*cache.ChainedStore, error) {
	var mirrors []cache.Store

	if cfg.Redis.IsEnabled() {
		rs, err := cache.NewRedisStore(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}

		mirrors = append(mirrors, rs)
	}

	if cfg.Database.IsEnabled() {
		ds, err := cache.NewDatabaseStore(ctx, &cfg.Database)
		if err != nil {
			for _, m := range mirrors {
				if c, ok := m.(io.Closer); ok {
					_ = c.Close()
				}
			}

			return nil, err
		}

		mirrors = append(mirrors, ds)
	}

	return cache.NewChainedStore(cache.NewFileStore(cfg.Output), mirrors...), nil
}
