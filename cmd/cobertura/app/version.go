package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjy-dev/cobertura/internal/cobertura"
)

// NewVersionCommand creates the "version" subcommand.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the generator version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cobertura %s\n", cobertura.Version)
		},
	}
}
