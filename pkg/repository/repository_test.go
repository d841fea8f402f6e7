package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kutbudev/contactbook/internal/testutil"
	"github.com/kutbudev/contactbook/pkg/models"
	"github.com/kutbudev/contactbook/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTxFn_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenSQLite(t)
	contacts := repository.NewContactRepository(db)

	boom := errors.New("boom")
	err := db.TxFn(ctx, func(ctx context.Context) error {
		if err := contacts.Create(ctx, &models.Contact{FullName: "Ada", Email: "ada@example.com"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	all, err := contacts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTxFn_NestedCallJoinsOuter(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenSQLite(t)
	groups := repository.NewGroupRepository(db)

	err := db.TxFn(ctx, func(ctx context.Context) error {
		outer := db.Conn(ctx)
		return db.TxFn(ctx, func(ctx context.Context) error {
			assert.Same(t, outer, db.Conn(ctx))
			return groups.Create(ctx, &models.Group{Name: "family"})
		})
	})
	require.NoError(t, err)

	all, err := groups.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestContactRepository_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenSQLite(t)
	contacts := repository.NewContactRepository(db)

	require.NoError(t, contacts.Create(ctx, &models.Contact{FullName: "A", Email: "same@example.com"}))
	err := contacts.Create(ctx, &models.Contact{FullName: "B", Email: "same@example.com"})
	require.Error(t, err)
	assert.True(t, repository.IsUniqueViolation(err))
}

func TestContactRepository_GetMissing(t *testing.T) {
	db := testutil.OpenSQLite(t)

	_, err := repository.NewContactRepository(db).Get(context.Background(), 42)
	assert.True(t, repository.IsNotFound(err))
}

func TestRelations_DetachedOnDelete(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenSQLite(t)
	contacts := repository.NewContactRepository(db)
	groups := repository.NewGroupRepository(db)
	relations := repository.NewRelationRepository(db)

	contact := &models.Contact{FullName: "Ada", Email: "ada@example.com"}
	require.NoError(t, contacts.Create(ctx, contact))
	group := &models.Group{Name: "family"}
	require.NoError(t, groups.Create(ctx, group))
	rel, err := relations.Create(ctx, contact.ID, group.ID)
	require.NoError(t, err)
	assert.NotZero(t, rel.ID)

	// Unknown group ids are rejected by the foreign key.
	_, err = relations.Create(ctx, contact.ID, 999)
	require.Error(t, err)

	loaded, err := groups.Get(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"family"}, loaded.Serialize().Contacts[0].Groups)

	require.NoError(t, contacts.Delete(ctx, contact.ID))

	var stored models.RelationContactGroup
	require.NoError(t, db.DB.First(&stored, rel.ID).Error)
	assert.Nil(t, stored.ContactID)
	require.NotNil(t, stored.GroupID)
	assert.Equal(t, group.ID, *stored.GroupID)

	loaded, err = groups.Get(ctx, group.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Serialize().Contacts)
}

func TestContactRepository_UpdateColumns(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenSQLite(t)
	contacts := repository.NewContactRepository(db)

	contact := &models.Contact{FullName: "Ada", Email: "ada@example.com"}
	require.NoError(t, contacts.Create(ctx, contact))

	require.NoError(t, contacts.Update(ctx, contact, nil))
	require.NoError(t, contacts.Update(ctx, contact, map[string]any{"phone": "5551234"}))

	got, err := contacts.Get(ctx, contact.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "5551234", *got.Phone)
	assert.Equal(t, "Ada", got.FullName)
}

func TestPgErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		unique  bool
		foreign bool
	}{
		{"nil", nil, false, false},
		{"gorm duplicated", gorm.ErrDuplicatedKey, true, false},
		{"gorm foreign key", gorm.ErrForeignKeyViolated, false, true},
		{"pg unique", &pgconn.PgError{Code: repository.UniqueViolationCode}, true, false},
		{"pg foreign key wrapped", errors.Join(errors.New("insert"), &pgconn.PgError{Code: repository.ForeignKeyViolationCode}), false, true},
		{"pg other", &pgconn.PgError{Code: "42P01"}, false, false},
		{"plain", errors.New("x"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, repository.IsUniqueViolation(tt.err))
			assert.Equal(t, tt.foreign, repository.IsForeignKeyViolation(tt.err))
		})
	}
}

func TestDatabase_Health(t *testing.T) {
	db := testutil.OpenSQLite(t)
	require.NoError(t, db.Health(context.Background()))
}
