package main

import (
	"os"

	"github.com/kutbudev/contactbook/cli"
	"github.com/spf13/cobra"
)

// Version will be set during build with ldflags
var Version = "0.1.0"

func main() {
	var rootCmd = &cobra.Command{
		Use:   "contactbook",
		Short: "Contacts and groups REST API",
		Long: `contactbook serves a REST API for contacts, groups and the relations
between them, backed by PostgreSQL.`,
		Version:      Version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.NewServeCommand())
	rootCmd.AddCommand(cli.NewMigrateCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand(Version))

	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, so we just need to exit.
		os.Exit(1)
	}
}
