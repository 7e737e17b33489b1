package cmd

import (
	"fmt"

	"github.com/fulmenhq/tonegen/pkg/config"
	"github.com/spf13/cobra"
)

// loadConfig resolves configuration for the asset directory using the
// persistent --config flag.
func loadConfig(cmd *cobra.Command, dir string) (*config.Config, error) {
	explicit, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(dir, explicit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}
	return cfg, nil
}
