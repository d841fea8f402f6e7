package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/kutbudev/contactbook/pkg/config"
	"github.com/spf13/cobra"
)

// NewConfigCommand inspects the resolved server configuration.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
		Long:  `Shows the configuration after .env, config.yaml and environment variables are merged.`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return printConfig(cmd.OutOrStdout(), cfg)
		},
	}
}

func printConfig(out io.Writer, cfg *config.Config) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"database.dsn", maskDSN(cfg.Database.DSN)},
		{"database.host", cfg.Database.Host},
		{"database.port", fmt.Sprint(cfg.Database.Port)},
		{"database.user", cfg.Database.User},
		{"database.password", mask(cfg.Database.Password)},
		{"database.name", cfg.Database.Name},
		{"database.ssl_mode", cfg.Database.SSLMode},
		{"database.auto_migrate", fmt.Sprint(cfg.Database.AutoMigrate)},
		{"server.addr", cfg.Server.Addr()},
		{"log.level", cfg.Log.Level},
		{"log.format", cfg.Log.Format},
		{"rate_limit.rps", fmt.Sprint(cfg.RateLimit.RPS)},
		{"rate_limit.burst", fmt.Sprint(cfg.RateLimit.Burst)},
		{"cors.allowed_origins", strings.Join(cfg.CORS.AllowedOrigins, ",")},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	return w.Flush()
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

// maskDSN hides the password of a postgres:// URL or a key=value DSN.
func maskDSN(dsn string) string {
	if dsn == "" {
		return ""
	}
	if at := strings.LastIndex(dsn, "@"); at > 0 {
		if scheme := strings.Index(dsn, "://"); scheme >= 0 && scheme < at {
			creds := dsn[scheme+3 : at]
			if colon := strings.Index(creds, ":"); colon >= 0 {
				return dsn[:scheme+3] + creds[:colon] + ":********" + dsn[at:]
			}
		}
		return dsn
	}
	fields := strings.Fields(dsn)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=********"
		}
	}
	return strings.Join(fields, " ")
}
