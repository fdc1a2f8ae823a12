package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seifreed/NSECGenerator/log"
)

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Args:  cobra.NoArgs,
		Short: "Validates the configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			log.Log().Info("configuration is valid")
			fmt.Fprintln(cmd.OutOrStdout(), "OK")

			return nil
		},
	}
}
