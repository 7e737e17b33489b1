package cmd

import (
	"strings"

	"github.com/fulmenhq/tonegen/internal/generate"
	"github.com/fulmenhq/tonegen/internal/manifest"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// formatFlag validates --format while flags are parsed.
type formatFlag struct {
	value manifest.Format
}

var _ pflag.Value = (*formatFlag)(nil)

func (f *formatFlag) String() string { return string(f.value) }

func (f *formatFlag) Set(s string) error {
	v, err := manifest.ParseFormat(s)
	if err != nil {
		return err
	}
	f.value = v
	return nil
}

func (f *formatFlag) Type() string { return "format" }

func formatNames() string {
	names := make([]string, len(manifest.Formats))
	for i, f := range manifest.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, "|")
}

func newManifestCommand() *cobra.Command {
	format := &formatFlag{value: manifest.FormatJSON}
	cmd := &cobra.Command{
		Use:   "manifest <dir>",
		Short: "Print the asset manifest as JSON, YAML, TOML or XML",
		Long: `Print every asset with its ordinal, symbol, enum label, URL and link symbol.

The manifest carries the same identities the generated header uses, for
tooling that needs them without parsing C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runManifest(cmd, args[0], format.value)
		},
	}
	cmd.Flags().Var(format, "format", "Output format ("+formatNames()+")")
	return cmd
}

func runManifest(cmd *cobra.Command, dir string, format manifest.Format) error {
	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		return err
	}
	m, err := manifest.Build(dir, generate.ManifestOptions(cfg))
	if err != nil {
		return err
	}
	return manifest.Export(cmd.OutOrStdout(), m, format)
}
