// Package testutil opens throwaway databases for tests.
package testutil

import (
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/kutbudev/contactbook/pkg/repository"
	"gorm.io/driver/sqlite"
)

// OpenSQLite returns an isolated in-memory database with foreign keys enforced and the
// schema created from the models. A single connection serializes writers, which is
// what the shared-cache memory database needs.
func OpenSQLite(t *testing.T) *repository.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := repository.Open(sqlite.Open(dsn), repository.Options{
		MaxOpenConns: 1,
		AutoMigrate:  true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// PostgresDSN returns PG_DSN or skips the test when it is unset.
func PostgresDSN(t *testing.T) string {
	t.Helper()

	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN not set; skipping Postgres tests")
	}
	return dsn
}
