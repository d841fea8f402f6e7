package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/kutbudev/contactbook/internal/api"
	"github.com/kutbudev/contactbook/pkg/models"
	"github.com/urfave/cli/v2"
)

// NewGroupCommand creates all subcommands for the 'group' command group.
func NewGroupCommand() *cli.Command {
	return &cli.Command{
		Name:    "group",
		Aliases: []string{"g"},
		Usage:   "Manage groups",
		Subcommands: []*cli.Command{
			groupListCmd(),
			groupShowCmd(),
			groupCreateCmd(),
			groupUpdateCmd(),
			groupDeleteCmd(),
		},
	}
}

func groupListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all groups",
		Action: func(c *cli.Context) error {
			groups, err := newClient().ListGroups(c.Context)
			if err != nil {
				return fmt.Errorf("listing groups: %w", err)
			}

			out := c.App.Writer
			if len(groups) == 0 {
				fmt.Fprintln(out, "No groups found. Use 'contactctl group create' to add one.")
				return nil
			}

			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Groups (%d)", len(groups))))
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCONTACTS")
			for _, g := range groups {
				fmt.Fprintf(w, "%d\t%s\t%d\n", g.ID, g.Name, len(g.Contacts))
			}
			return w.Flush()
		},
	}
}

func groupShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a group and its contacts",
		ArgsUsage: "[group-id]",
		Action: func(c *cli.Context) error {
			id, err := parseID(c, "group")
			if err != nil {
				return err
			}
			group, err := newClient().GetGroup(c.Context, id)
			if err != nil {
				return fmt.Errorf("getting group: %w", err)
			}
			printGroup(c, group)
			return nil
		},
	}
}

func groupCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a new group",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.IntSliceFlag{Name: "contact", Aliases: []string{"c"}, Usage: "Contact ID to add (repeatable)"},
		},
		Action: func(c *cli.Context) error {
			name := c.Args().First()
			if err := requireValue(&name, "name", "Group name:"); err != nil {
				return err
			}
			contacts, err := toIDs(c.IntSlice("contact"), "contact")
			if err != nil {
				return err
			}

			group, err := newClient().CreateGroup(c.Context, api.CreateGroupRequest{Name: name, Contacts: contacts})
			if err != nil {
				return fmt.Errorf("creating group: %w", err)
			}

			fmt.Fprintln(c.App.Writer, successStyle.Render(fmt.Sprintf("Group '%s' created", group.Name)))
			fmt.Fprintf(c.App.Writer, "ID: %d\n", group.ID)
			if len(contacts) > len(group.Contacts) {
				fmt.Fprintln(c.App.Writer, mutedStyle.Render(
					fmt.Sprintf("Added %d of %d requested contacts", len(group.Contacts), len(contacts))))
			}
			return nil
		},
	}
}

func groupUpdateCmd() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Rename a group",
		ArgsUsage: "[group-id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "New group name", Required: true},
		},
		Action: func(c *cli.Context) error {
			id, err := parseID(c, "group")
			if err != nil {
				return err
			}
			group, err := newClient().UpdateGroup(c.Context, id, api.UpdateGroupRequest{Name: stringPtr(c.String("name"))})
			if err != nil {
				return fmt.Errorf("updating group: %w", err)
			}
			fmt.Fprintln(c.App.Writer, successStyle.Render(fmt.Sprintf("Group %d renamed to '%s'", group.ID, group.Name)))
			return nil
		},
	}
}

func groupDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a group",
		ArgsUsage: "[group-id]",
		Flags:     []cli.Flag{yesFlag()},
		Action: func(c *cli.Context) error {
			id, err := parseID(c, "group")
			if err != nil {
				return err
			}
			ok, err := confirm(c, fmt.Sprintf("Delete group %d?", id))
			if err != nil || !ok {
				return err
			}

			deleted, err := newClient().DeleteGroup(c.Context, id)
			if err != nil {
				return fmt.Errorf("deleting group: %w", err)
			}
			fmt.Fprintln(c.App.Writer, successStyle.Render(
				fmt.Sprintf("Group %d (%s) deleted", deleted.ID, deleted.Name)))
			return nil
		},
	}
}

func printGroup(c *cli.Context, group *models.GroupView) {
	out := c.App.Writer
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%s (ID %d)", group.Name, group.ID)))
	if len(group.Contacts) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("No contacts in this group."))
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
	for _, ct := range group.Contacts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", ct.ID, ct.FullName, ct.Email, orDash(ct.Phone))
	}
	_ = w.Flush()
}
