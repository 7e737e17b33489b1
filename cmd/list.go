package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fulmenhq/tonegen/internal/generate"
	"github.com/fulmenhq/tonegen/internal/manifest"
	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <dir>",
		Short: "List the assets that would be embedded",
		Args:  cobra.ExactArgs(1),
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	dir := args[0]
	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		return err
	}

	m, err := manifest.Build(dir, generate.ManifestOptions(cfg))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, generate.AssetTable(m)); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%d assets, %s\n", m.Len(), humanize.IBytes(uint64(m.TotalSize()))) // #nosec G115 -- sum of non-negative sizes
	return err
}
