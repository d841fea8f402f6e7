package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/kutbudev/contactbook/internal/logging"
	"github.com/kutbudev/contactbook/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(files, "sql")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %s", name)
		}
	}
	require.Equal(t, ups, downs)
}

func TestMigrator_UpDownUp(t *testing.T) {
	dsn := testutil.PostgresDSN(t)

	mg, err := New(dsn, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = mg.Close() })

	require.NoError(t, mg.Down(0))
	_, _, ok, err := mg.Version()
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, mg.Up())
	version, dirty, ok, err := mg.Version()
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, dirty)
	require.Equal(t, uint(1), version)

	// Re-running is a no-op.
	require.NoError(t, mg.Up())

	require.NoError(t, mg.Down(1))
	require.NoError(t, mg.Up())
}
