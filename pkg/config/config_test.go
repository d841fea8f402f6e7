package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs Load from an empty directory with the connection variables cleared.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, key := range []string{
		"DB_CONNECTION_STRING", "DATABASE_DSN", "PG_HOST", "PG_PORT", "PG_USER",
		"PG_PASSWORD", "PG_DATABASE", "PG_SSL_MODE", "PORT", "SERVER_PORT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Zero(t, cfg.RateLimit.RPS)
	assert.Equal(t,
		"host=localhost user=postgres password= dbname=contactbook port=5432 sslmode=disable",
		cfg.Database.GetDatabaseDSN())
	assert.Equal(t,
		"postgres://postgres:@localhost:5432/contactbook?sslmode=disable",
		cfg.Database.GetMigrationURL())
}

func TestLoad_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("DB_CONNECTION_STRING", "postgres://app:secret@db:5432/contacts")
	t.Setenv("PORT", "8081")
	t.Setenv("RATE_LIMIT_RPS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "postgres://app:secret@db:5432/contacts", cfg.Database.GetDatabaseDSN())
	assert.Equal(t, "postgres://app:secret@db:5432/contacts", cfg.Database.GetMigrationURL())
	assert.Equal(t, 5.0, cfg.RateLimit.RPS)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	yaml := []byte(`
server:
  port: 9000
log:
  level: debug
database:
  name: contacts_test
cors:
  allowed_origins:
    - https://app.example.com
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "contacts_test", cfg.Database.Name)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [\n"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}
