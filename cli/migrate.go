package cli

import (
	"fmt"

	"github.com/kutbudev/contactbook/internal/logging"
	"github.com/kutbudev/contactbook/internal/migrations"
	"github.com/kutbudev/contactbook/pkg/config"
	"github.com/spf13/cobra"
)

// NewMigrateCommand groups the schema migration subcommands.
func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert the database schema",
		Long: `Runs the versioned SQL migrations against the configured database.

Examples:
  contactbook migrate up
  contactbook migrate down --steps 1
  contactbook migrate version`,
	}

	cmd.AddCommand(newMigrateUpCommand())
	cmd.AddCommand(newMigrateDownCommand())
	cmd.AddCommand(newMigrateVersionCommand())

	return cmd
}

func newMigrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(mg *migrations.Migrator) error {
				if err := mg.Up(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
				return nil
			})
		},
	}
}

func newMigrateDownCommand() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Revert migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(mg *migrations.Migrator) error {
				if err := mg.Down(steps); err != nil {
					return err
				}
				if steps <= 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Reverted all migrations")
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Reverted %d migration(s)\n", steps)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to revert (0 reverts all)")

	return cmd
}

func newMigrateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(mg *migrations.Migrator) error {
				version, dirty, ok, err := mg.Version()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				switch {
				case !ok:
					fmt.Fprintln(out, "No migrations applied")
				case dirty:
					fmt.Fprintf(out, "Version %d (dirty)\n", version)
				default:
					fmt.Fprintf(out, "Version %d\n", version)
				}
				return nil
			})
		},
	}
}

func withMigrator(fn func(mg *migrations.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)

	mg, err := migrations.New(cfg.Database.GetMigrationURL(), log)
	if err != nil {
		return err
	}
	defer func() {
		if err := mg.Close(); err != nil {
			log.WithError(err).Warn("closing migrator")
		}
	}()
	return fn(mg)
}
