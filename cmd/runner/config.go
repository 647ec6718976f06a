package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
)

var flagConfigTOML bool

var configCmd = &cobra.Command{
	Use:   "config [variant]",
	Short: "Print the effective runner configuration",
	Long: `Print the configuration a variant runs with: the variant preset with
any config file applied on top. The output is a valid config file.

Variants: classic, plus, touch.

Examples:
  runner config
  runner config plus --toml > ~/.runner/configs/runner.toml
  runner config touch --config ./runner.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigTOML, "toml", false, "Print TOML instead of YAML")
}

func runConfig(_ *cobra.Command, args []string) {
	variant := config.VariantClassic
	if len(args) == 1 {
		v, ok := config.ParseVariant(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", args[0])
			os.Exit(1)
		}
		variant = v
	}

	cfg, err := config.LoadRunner(flagConfig, variant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	format := config.FormatYAML
	if flagConfigTOML {
		format = config.FormatTOML
	}
	data, err := config.Encode(cfg, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data) //nolint:errcheck
}
