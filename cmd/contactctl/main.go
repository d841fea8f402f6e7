package main

import (
	"log"
	"os"

	"github.com/kutbudev/contactbook/internal/cli/commands"
	"github.com/urfave/cli/v2"
)

// Version will be set during build with ldflags
var Version = "0.1.0"

func main() {
	app := &cli.App{
		Name:    "contactctl",
		Usage:   "Command-line client for the contactbook API",
		Version: Version,
		Commands: []*cli.Command{
			commands.NewContactCommand(),
			commands.NewGroupCommand(),
			commands.NewConfigCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
