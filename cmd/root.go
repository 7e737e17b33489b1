/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"errors"
	"os"

	"github.com/fulmenhq/tonegen/internal/emit"
	"github.com/fulmenhq/tonegen/internal/generate"
	"github.com/fulmenhq/tonegen/internal/manifest"
	"github.com/fulmenhq/tonegen/internal/ops"
	"github.com/fulmenhq/tonegen/pkg/buildinfo"
	"github.com/fulmenhq/tonegen/pkg/config"
	"github.com/fulmenhq/tonegen/pkg/exitcode"
	"github.com/fulmenhq/tonegen/pkg/logger"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// newRootCommand creates a fresh root command instance.
// Tests build isolated command trees from it without shared flag state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tonegen",
		Short: "Generate firmware tone tables from a directory of audio assets",
		Long: `Tonegen scans a directory of .wav and .mp3 files and generates the C header
and CMake file list that embed them into firmware, with stable indices,
enum constants and embed:// URLs for every asset.

Examples:
   tonegen generate ./tones          # Write esp_embed_tone.h and esp_embed_tone.cmake
   tonegen generate ./tones --check  # Fail if the generated files are out of date
   tonegen list ./tones              # Show discovered assets
   tonegen manifest ./tones --format yaml`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().String("config", "", "Config file (default: .tonegen.yaml in the asset directory or working directory)")

	cmd.Version = buildinfo.Version()
	cmd.SetVersionTemplate("tonegen {{.Version}}\n")

	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		if cmd.HasParent() {
			desc := cmd.Long
			if desc == "" {
				desc = cmd.Short
			}
			cmd.Println(desc)
			cmd.Println()
			cmd.Print(cmd.UsageString())
			return
		}
		reg := ops.GetRegistry()
		counts := reg.ListGroups()
		cmd.Println(cmd.Long)
		for _, group := range ops.Groups {
			if counts[group] == 0 {
				continue
			}
			cmd.Println()
			cmd.Printf("%s:\n", group.Title())
			for _, c := range reg.GetCommandsByGroup(group) {
				cmd.Printf("  %-12s %s\n", c.Name, c.Description)
			}
		}
		cmd.Println()
		cmd.Print(cmd.UsageString())
	})

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(newGenerateCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newManifestCommand())
	cmd.AddCommand(newVersionCommand())
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute runs the root command and exits with a code describing the failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := exitCodeFor(err)
		logger.Error("Command execution failed", logger.Err(err), logger.String("exit", exitcode.String(code)))
		os.Exit(code)
	}
}

func init() {
	registerSubcommands(rootCmd)
	for _, c := range rootCmd.Commands() {
		group := ops.GroupGenerate
		if c.Name() == "version" {
			group = ops.GroupSupport
		}
		if err := ops.RegisterCommand(c.Name(), group, c, c.Short); err != nil {
			panic(err)
		}
	}
}

// errConfig marks failures while loading configuration.
var errConfig = errors.New("configuration error")

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, errConfig), config.IsValidationError(err):
		return exitcode.ConfigError
	case manifest.IsNameCollisionError(err), generate.IsStaleError(err):
		return exitcode.ValidationError
	case manifest.IsDirectoryAccessError(err), emit.IsEmitError(err):
		return exitcode.FileSystemError
	default:
		return exitcode.GeneralError
	}
}

// initializeLogger sets up the logger based on command flags
// rootBool reads a persistent root flag. Subcommands may define a local
// flag of the same name (version --json), which shadows the root flag in
// cmd.Flags().
func rootBool(cmd *cobra.Command, name string) bool {
	if v, err := cmd.Root().PersistentFlags().GetBool(name); err == nil {
		return v
	}
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func rootString(cmd *cobra.Command, name string) string {
	if v, err := cmd.Root().PersistentFlags().GetString(name); err == nil {
		return v
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}

func initializeLogger(cmd *cobra.Command) {
	logLevelStr := rootString(cmd, "log-level")
	jsonLogs := rootBool(cmd, "json")
	noColor := rootBool(cmd, "no-color")
	check, _ := cmd.Flags().GetBool("check")

	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	cfg := logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  tty && !noColor,
		JSON:      jsonLogs,
		Component: "tonegen",
		Check:     check,
	}

	if err := logger.Initialize(cfg); err != nil {
		_, _ = os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(exitcode.ConfigError)
	}
}
