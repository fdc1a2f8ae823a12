package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seifreed/NSECGenerator/config"
	"github.com/seifreed/NSECGenerator/nsec3"
)

func newCacheKeyCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "cache-key",
		Args:  cobra.NoArgs,
		Short: "Prints the cache file name for --salt and --iterations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			key := nsec3.CacheKey(cfg.Salt, cfg.Iterations)
			if cfg.Mode == config.HashModeWire {
				key = nsec3.WireCacheKey(cfg.Salt, cfg.Iterations)
			}

			fmt.Fprintln(cmd.OutOrStdout(), nsec3.CacheFileName(key))

			return nil
		},
	}
}
