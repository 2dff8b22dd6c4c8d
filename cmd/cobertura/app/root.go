package app

import (
	"github.com/spf13/cobra"
)

// NewCoberturaCommand creates the root command for the cobertura tool.
func NewCoberturaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cobertura",
		Short:         "Convert collected coverage into a Cobertura XML report.",
		Long:          `cobertura reads coverage collected by SimpleCov or gcovr and writes a Cobertura coverage.xml for CI tooling.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to a config file (default: configs/config.yaml when present)")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(NewConvertCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}
