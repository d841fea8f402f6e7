package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand prints the build version.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "contactbook %s\n", version)
		},
	}
}
