package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/kutbudev/contactbook/internal/api"
	"github.com/kutbudev/contactbook/pkg/models"
	"github.com/urfave/cli/v2"
)

// NewContactCommand creates all subcommands for the 'contact' command group.
func NewContactCommand() *cli.Command {
	return &cli.Command{
		Name:    "contact",
		Aliases: []string{"c"},
		Usage:   "Manage contacts",
		Subcommands: []*cli.Command{
			contactListCmd(),
			contactShowCmd(),
			contactCreateCmd(),
			contactUpdateCmd(),
			contactDeleteCmd(),
		},
	}
}

func contactListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all contacts",
		Action: func(c *cli.Context) error {
			contacts, err := newClient().ListContacts(c.Context)
			if err != nil {
				return fmt.Errorf("listing contacts: %w", err)
			}

			out := c.App.Writer
			if len(contacts) == 0 {
				fmt.Fprintln(out, "No contacts found. Use 'contactctl contact create' to add one.")
				return nil
			}

			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Contacts (%d)", len(contacts))))
			wide := terminalWidth() >= 100
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			if wide {
				fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tADDRESS\tGROUPS")
			} else {
				fmt.Fprintln(w, "ID\tNAME\tEMAIL\tGROUPS")
			}
			for _, ct := range contacts {
				groups := truncateString(strings.Join(ct.Groups, ", "), 30)
				if wide {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
						ct.ID, ct.FullName, ct.Email, orDash(ct.Phone),
						truncateString(orDash(ct.Address), 30), groups)
				} else {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", ct.ID, ct.FullName, ct.Email, groups)
				}
			}
			return w.Flush()
		},
	}
}

func contactShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show details for a contact",
		ArgsUsage: "[contact-id]",
		Action: func(c *cli.Context) error {
			id, err := parseID(c, "contact")
			if err != nil {
				return err
			}
			contact, err := newClient().GetContact(c.Context, id)
			if err != nil {
				return fmt.Errorf("getting contact: %w", err)
			}
			printContact(c, contact)
			return nil
		},
	}
}

func contactCreateCmd() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a new contact",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Full name"},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email address (unique)"},
			&cli.StringFlag{Name: "address", Aliases: []string{"a"}, Usage: "Postal address"},
			&cli.StringFlag{Name: "phone", Aliases: []string{"p"}, Usage: "Phone number (max 10 chars)"},
			&cli.IntSliceFlag{Name: "group", Aliases: []string{"g"}, Usage: "Group ID to join (repeatable)"},
		},
		Action: func(c *cli.Context) error {
			name := c.String("name")
			email := c.String("email")
			if err := requireValue(&name, "name", "Full name:"); err != nil {
				return err
			}
			if err := requireValue(&email, "email", "Email:"); err != nil {
				return err
			}
			groups, err := toIDs(c.IntSlice("group"), "group")
			if err != nil {
				return err
			}

			contact, err := newClient().CreateContact(c.Context, api.CreateContactRequest{
				FullName: name,
				Email:    email,
				Address:  optionalString(c, "address"),
				Phone:    optionalString(c, "phone"),
				Groups:   groups,
			})
			if err != nil {
				return fmt.Errorf("creating contact: %w", err)
			}

			fmt.Fprintln(c.App.Writer, successStyle.Render(fmt.Sprintf("Contact '%s' created", contact.FullName)))
			fmt.Fprintf(c.App.Writer, "ID: %d\n", contact.ID)
			if len(groups) > len(contact.Groups) {
				fmt.Fprintln(c.App.Writer, mutedStyle.Render(
					fmt.Sprintf("Joined %d of %d requested groups", len(contact.Groups), len(groups))))
			}
			return nil
		},
	}
}

func contactUpdateCmd() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update a contact's fields",
		ArgsUsage: "[contact-id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "New full name"},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "New email address"},
			&cli.StringFlag{Name: "address", Aliases: []string{"a"}, Usage: "New postal address"},
			&cli.StringFlag{Name: "phone", Aliases: []string{"p"}, Usage: "New phone number"},
		},
		Action: func(c *cli.Context) error {
			id, err := parseID(c, "contact")
			if err != nil {
				return err
			}
			req := api.UpdateContactRequest{
				FullName: optionalString(c, "name"),
				Email:    optionalString(c, "email"),
				Address:  optionalString(c, "address"),
				Phone:    optionalString(c, "phone"),
			}
			if req.Empty() {
				return fmt.Errorf("nothing to update: pass at least one of --name, --email, --address, --phone")
			}

			contact, err := newClient().UpdateContact(c.Context, id, req)
			if err != nil {
				return fmt.Errorf("updating contact: %w", err)
			}
			fmt.Fprintln(c.App.Writer, successStyle.Render(fmt.Sprintf("Contact %d updated", contact.ID)))
			printContact(c, contact)
			return nil
		},
	}
}

func contactDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a contact",
		ArgsUsage: "[contact-id]",
		Flags:     []cli.Flag{yesFlag()},
		Action: func(c *cli.Context) error {
			id, err := parseID(c, "contact")
			if err != nil {
				return err
			}
			ok, err := confirm(c, fmt.Sprintf("Delete contact %d?", id))
			if err != nil || !ok {
				return err
			}

			deleted, err := newClient().DeleteContact(c.Context, id)
			if err != nil {
				return fmt.Errorf("deleting contact: %w", err)
			}
			fmt.Fprintln(c.App.Writer, successStyle.Render(
				fmt.Sprintf("Contact %d (%s) deleted", deleted.ID, deleted.FullName)))
			return nil
		},
	}
}

func printContact(c *cli.Context, contact *models.ContactView) {
	out := c.App.Writer
	fmt.Fprintln(out, headerStyle.Render(contact.FullName))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%d\n", contact.ID)
	fmt.Fprintf(w, "Email:\t%s\n", contact.Email)
	fmt.Fprintf(w, "Phone:\t%s\n", orDash(contact.Phone))
	fmt.Fprintf(w, "Address:\t%s\n", orDash(contact.Address))
	groups := "-"
	if len(contact.Groups) > 0 {
		groups = strings.Join(contact.Groups, ", ")
	}
	fmt.Fprintf(w, "Groups:\t%s\n", groups)
	_ = w.Flush()
}
