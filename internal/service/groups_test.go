package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/kutbudev/contactbook/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupCreate_RoundTripsContacts(t *testing.T) {
	contacts, groups := newServices(t)
	ctx := context.Background()
	c1, err := contacts.Create(ctx, CreateContactInput{
		FullName: "Barbara Liskov",
		Email:    "barbara@example.com",
		Phone:    strPtr("5550199"),
	})
	require.NoError(t, err)

	g, err := groups.Create(ctx, CreateGroupInput{Name: "mentors", Contacts: []uint{c1.ID}})
	require.NoError(t, err)

	got, err := groups.Get(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, got.Contacts, 1)

	// Nested contacts are fully serialized and reflect their own memberships.
	member := got.Contacts[0]
	assert.Equal(t, c1.ID, member.ID)
	assert.Equal(t, "Barbara Liskov", member.FullName)
	assert.Equal(t, "barbara@example.com", member.Email)
	assert.Equal(t, []string{"mentors"}, member.Groups)
}

func TestGroupCreate_RelationFailuresAreSwallowed(t *testing.T) {
	contacts, groups := newServices(t)
	ctx := context.Background()
	c1, err := contacts.Create(ctx, CreateContactInput{FullName: "Ken", Email: "ken@example.com"})
	require.NoError(t, err)

	g, err := groups.Create(ctx, CreateGroupInput{Name: "unix", Contacts: []uint{404, c1.ID, 405}})
	require.NoError(t, err)
	require.Len(t, g.Contacts, 1)
	assert.Equal(t, c1.ID, g.Contacts[0].ID)
}

func TestGroupCreate_DuplicateRelationsAllowed(t *testing.T) {
	contacts, groups := newServices(t)
	ctx := context.Background()
	c1, err := contacts.Create(ctx, CreateContactInput{FullName: "Dennis", Email: "dennis@example.com"})
	require.NoError(t, err)

	g, err := groups.Create(ctx, CreateGroupInput{Name: "bell labs", Contacts: []uint{c1.ID, c1.ID}})
	require.NoError(t, err)
	assert.Len(t, g.Contacts, 2)
}

func TestGroupList(t *testing.T) {
	_, groups := newServices(t)
	ctx := context.Background()
	mustGroup(t, groups, "a")
	mustGroup(t, groups, "b")

	all, err := groups.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, "b", all[1].Name)
	assert.NotNil(t, all[0].Contacts)
}

func TestGroupUpdate(t *testing.T) {
	_, groups := newServices(t)
	ctx := context.Background()
	g := mustGroup(t, groups, "old")

	updated, err := groups.Update(ctx, g.ID, UpdateGroupInput{Name: strPtr("new")})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Name)

	unchanged, err := groups.Update(ctx, g.ID, UpdateGroupInput{})
	require.NoError(t, err)
	assert.Equal(t, "new", unchanged.Name)

	_, err = groups.Update(ctx, 999, UpdateGroupInput{Name: strPtr("x")})
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestGroupUpdate_NameCannotBeCleared(t *testing.T) {
	_, groups := newServices(t)
	ctx := context.Background()
	g := mustGroup(t, groups, "keep")

	var null UpdateGroupInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":null}`), &null))
	require.NoError(t, binding.Validator.ValidateStruct(&null))
	_, err := groups.Update(ctx, g.ID, null)
	ae, ok := apperr.As(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, MsgInvalidPayload, ae.Message)

	var empty UpdateGroupInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":""}`), &empty))
	assert.Error(t, binding.Validator.ValidateStruct(&empty))

	got, err := groups.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep", got.Name)
}

func TestGroupDelete(t *testing.T) {
	contacts, groups := newServices(t)
	ctx := context.Background()
	g := mustGroup(t, groups, "temp")
	c, err := contacts.Create(ctx, CreateContactInput{FullName: "Edsger", Email: "edsger@example.com", Groups: []uint{g.ID}})
	require.NoError(t, err)
	require.Equal(t, []string{"temp"}, c.Groups)

	deleted, err := groups.Delete(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, DeletedGroup{ID: g.ID, Name: "temp"}, deleted)

	// The contact survives and no longer reports the group.
	got, err := contacts.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Groups)

	_, err = groups.Delete(ctx, g.ID)
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ae.Status)
	assert.Equal(t, MsgGroupNotFound, ae.Message)
}
