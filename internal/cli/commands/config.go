package commands

import (
	"fmt"
	"net/url"
	"os"

	"github.com/kutbudev/contactbook/internal/config"
	"github.com/urfave/cli/v2"
)

// NewConfigCommand manages the local client configuration.
func NewConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Show or change the server contactctl talks to",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the resolved server URL",
				Action: func(c *cli.Context) error {
					path, err := config.GetConfigPath()
					if err != nil {
						return err
					}
					source := "config file"
					if os.Getenv("CONTACTBOOK_URL") != "" {
						source = "CONTACTBOOK_URL"
					} else if cfg, err := config.LoadConfig(); err != nil || cfg.BaseURL == "" {
						source = "default"
					}
					fmt.Fprintf(c.App.Writer, "Server:      %s (%s)\n", newClient().BaseURL, source)
					fmt.Fprintf(c.App.Writer, "Config file: %s\n", path)
					return nil
				},
			},
			{
				Name:      "set-url",
				Usage:     "Store the server base URL",
				ArgsUsage: "[url]",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return fmt.Errorf("server URL is required")
					}
					raw := c.Args().First()
					u, err := url.Parse(raw)
					if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
						return fmt.Errorf("invalid server URL %q", raw)
					}

					cfg, err := config.LoadConfig()
					if err != nil {
						return err
					}
					cfg.BaseURL = raw
					if err := config.SaveConfig(cfg); err != nil {
						return fmt.Errorf("saving config: %w", err)
					}
					fmt.Fprintln(c.App.Writer, successStyle.Render("Server URL saved: "+raw))
					return nil
				},
			},
			{
				Name:  "ping",
				Usage: "Check that the server is reachable",
				Action: func(c *cli.Context) error {
					client := newClient()
					if err := client.Ping(c.Context); err != nil {
						return fmt.Errorf("server %s unreachable: %w", client.BaseURL, err)
					}
					fmt.Fprintln(c.App.Writer, successStyle.Render("pong from "+client.BaseURL))
					return nil
				},
			},
		},
	}
}
