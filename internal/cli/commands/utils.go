package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/kutbudev/contactbook/internal/api"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

// Helper functions shared across commands

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// isInteractive reports whether prompts can be shown. Tests replace it.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// newClient is replaced in tests.
var newClient = api.NewClient

func stringPtr(s string) *string {
	return &s
}

func truncateString(s string, maxLen int) string {
	if maxLen < 4 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// terminalWidth falls back to 80 columns when stdout is not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func parseID(c *cli.Context, what string) (uint, error) {
	if c.NArg() == 0 {
		return 0, fmt.Errorf("%s ID is required", what)
	}
	id, err := strconv.ParseUint(c.Args().First(), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s ID %q", what, c.Args().First())
	}
	return uint(id), nil
}

func toIDs(values []int, what string) ([]uint, error) {
	ids := make([]uint, 0, len(values))
	for _, v := range values {
		if v <= 0 {
			return nil, fmt.Errorf("invalid %s ID %d", what, v)
		}
		ids = append(ids, uint(v))
	}
	return ids, nil
}

// optionalString returns nil unless the flag was given on the command line.
func optionalString(c *cli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	return stringPtr(c.String(name))
}

// requireValue prompts for a missing required value when running in a terminal.
func requireValue(value *string, flag, message string) error {
	if strings.TrimSpace(*value) != "" {
		return nil
	}
	if !isInteractive() {
		return fmt.Errorf("--%s is required", flag)
	}
	return survey.AskOne(&survey.Input{Message: message}, value, survey.WithValidator(survey.Required))
}

// confirm asks before destructive actions. Non-interactive runs proceed.
func confirm(c *cli.Context, message string) (bool, error) {
	if c.Bool("yes") || !isInteractive() {
		return true, nil
	}
	ok := false
	if err := survey.AskOne(&survey.Confirm{Message: message}, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

func yesFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Skip the confirmation prompt",
	}
}
