package commands

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	server "github.com/kutbudev/contactbook/api"
	"github.com/kutbudev/contactbook/internal/api"
	"github.com/kutbudev/contactbook/internal/logging"
	"github.com/kutbudev/contactbook/internal/metrics"
	"github.com/kutbudev/contactbook/internal/service"
	"github.com/kutbudev/contactbook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// setup points newClient at a real router over in-memory sqlite and disables prompts.
func setup(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenSQLite(t)
	m := metrics.New()
	log := logging.Discard()
	r := server.NewRouter(server.Deps{
		Contacts: service.NewContactService(db, m, log),
		Groups:   service.NewGroupService(db, m, log),
		Health:   db,
		Metrics:  m,
		Log:      log,
	})
	srv := httptest.NewServer(server.NewHandler(r, nil))
	t.Cleanup(srv.Close)

	prevClient, prevInteractive := newClient, isInteractive
	newClient = func() *api.Client { return api.New(srv.URL, srv.Client()) }
	isInteractive = func() bool { return false }
	t.Cleanup(func() {
		newClient, isInteractive = prevClient, prevInteractive
	})
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := &cli.App{
		Name:      "contactctl",
		Writer:    &out,
		ErrWriter: &out,
		Commands: []*cli.Command{
			NewContactCommand(),
			NewGroupCommand(),
			NewConfigCommand(),
		},
	}
	err := app.Run(append([]string{"contactctl"}, args...))
	return out.String(), err
}

func TestContactCommands(t *testing.T) {
	setup(t)

	out, err := run(t, "group", "create", "friends")
	require.NoError(t, err)
	assert.Contains(t, out, "Group 'friends' created")
	assert.Contains(t, out, "ID: 1")

	out, err = run(t, "contact", "create", "--name", "Ada Lovelace", "--email", "ada@example.com", "--group", "1", "--group", "99")
	require.NoError(t, err)
	assert.Contains(t, out, "Contact 'Ada Lovelace' created")
	assert.Contains(t, out, "Joined 1 of 2 requested groups")

	out, err = run(t, "contact", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "friends")

	out, err = run(t, "contact", "update", "--phone", "5551234", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "5551234")
	assert.Contains(t, out, "Ada Lovelace")

	out, err = run(t, "contact", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Groups:")
	assert.Contains(t, out, "friends")

	out, err = run(t, "contact", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Contact 1 (Ada Lovelace) deleted")

	_, err = run(t, "contact", "show", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Contact not found")
}

func TestContactCreate_RequiresFieldsWhenNotInteractive(t *testing.T) {
	setup(t)

	_, err := run(t, "contact", "create", "--email", "x@example.com")
	require.Error(t, err)
	assert.Equal(t, "--name is required", err.Error())
}

func TestContactCreate_DuplicateEmail(t *testing.T) {
	setup(t)

	_, err := run(t, "contact", "create", "-n", "A", "-e", "dup@example.com")
	require.NoError(t, err)

	_, err = run(t, "contact", "create", "-n", "B", "-e", "dup@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email must be unique")
}

func TestContactUpdate_NothingToUpdate(t *testing.T) {
	setup(t)

	_, err := run(t, "contact", "update", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestInvalidIDs(t *testing.T) {
	setup(t)

	tests := [][]string{
		{"contact", "show"},
		{"contact", "show", "abc"},
		{"group", "show", "0"},
		{"group", "delete", "-3"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := run(t, args...)
			require.Error(t, err)
		})
	}
}

func TestGroupCommands(t *testing.T) {
	setup(t)

	_, err := run(t, "contact", "create", "-n", "Grace Hopper", "-e", "grace@example.com")
	require.NoError(t, err)

	out, err := run(t, "group", "create", "--contact", "1", "navy")
	require.NoError(t, err)
	assert.Contains(t, out, "Group 'navy' created")

	out, err = run(t, "group", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Grace Hopper")

	out, err = run(t, "group", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "navy")

	out, err = run(t, "group", "update", "--name", "us navy", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "renamed to 'us navy'")

	out, err = run(t, "group", "delete", "--yes", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Group 1 (us navy) deleted")

	out, err = run(t, "group", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No groups found")
}

func TestConfigSetURL(t *testing.T) {
	setup(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CONTACTBOOK_URL", "")

	_, err := run(t, "config", "set-url", "not a url")
	require.Error(t, err)

	out, err := run(t, "config", "set-url", "http://contacts.internal:3000")
	require.NoError(t, err)
	assert.Contains(t, out, "Server URL saved")

	out, err = run(t, "config", "ping")
	require.NoError(t, err)
	assert.Contains(t, out, "pong")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
}
