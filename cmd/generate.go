package cmd

import (
	"github.com/fulmenhq/tonegen/internal/generate"
	"github.com/fulmenhq/tonegen/pkg/logger"
	"github.com/spf13/cobra"
)

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <dir>",
		Short: "Generate the tone header and CMake file list",
		Long: `Scan <dir> for audio assets and write the C header and CMake file list.

Assets are sorted by file name; the sorted position is each asset's index in
the lookup array, the enum and the URL table. Both files are staged first and
then renamed into place, so a failed run leaves the previous files intact.`,
		Args: cobra.ExactArgs(1),
		RunE: runGenerate,
	}
	cmd.Flags().Bool("check", false, "Verify the generated files are up to date without writing")
	cmd.Flags().Bool("dry-run", false, "Print the generated files instead of writing them")
	cmd.MarkFlagsMutuallyExclusive("check", "dry-run")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	dir := args[0]
	check, _ := cmd.Flags().GetBool("check")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		return err
	}
	if cfg.Source != "" {
		logger.Debug("Loaded config", logger.String("path", cfg.Source))
	}

	_, err = generate.Run(cmd.Context(), dir, cfg, generate.Options{
		Check:  check,
		DryRun: dryRun,
		Out:    cmd.OutOrStdout(),
	})
	return err
}
