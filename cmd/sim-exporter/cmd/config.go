package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aleph-Alpha/sim-exporter/pkg/config"
)

var showDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: "Print the configuration sim-exporter would run with, after defaults\n" +
		"and flag overrides, as YAML. Use --defaults to print a starting file.",
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&showDefaults, "defaults", false, "print the built-in defaults and ignore --config")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if !showDefaults {
		var err error
		if cfg, err = loadConfig(); err != nil {
			return fmt.Errorf("sim-exporter config: %w", err)
		}
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("sim-exporter config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
