package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string {
	return &s
}

func TestContactSerialize(t *testing.T) {
	family := &Group{ID: 1, Name: "family"}
	work := &Group{ID: 2, Name: "work"}

	tests := []struct {
		name      string
		relations []*RelationContactGroup
		want      []string
	}{
		{"no relations", nil, []string{}},
		{"in relation order", []*RelationContactGroup{{ID: 1, Group: work}, {ID: 2, Group: family}}, []string{"work", "family"}},
		{"detached group skipped", []*RelationContactGroup{{ID: 1, Group: family}, {ID: 2}}, []string{"family"}},
		{"duplicates kept", []*RelationContactGroup{{ID: 1, Group: family}, {ID: 2, Group: family}}, []string{"family", "family"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Contact{ID: 7, FullName: "Ada", Email: "ada@example.com", Phone: ptr("555"), Relations: tt.relations}
			view := c.Serialize()
			assert.Equal(t, tt.want, view.Groups)
			assert.NotNil(t, view.Groups)
			assert.Equal(t, uint(7), view.ID)
			assert.Nil(t, view.Address)
			assert.Equal(t, "555", *view.Phone)
		})
	}
}

func TestGroupSerialize_NestsFullContacts(t *testing.T) {
	g := &Group{ID: 3, Name: "climbing"}
	ada := &Contact{ID: 1, FullName: "Ada", Email: "ada@example.com"}
	ada.Relations = []*RelationContactGroup{{ID: 1, Group: g}}
	g.Relations = []*RelationContactGroup{
		{ID: 1, Contact: ada},
		{ID: 2}, // contact deleted
	}

	view := g.Serialize()
	assert.Equal(t, "climbing", view.Name)
	if assert.Len(t, view.Contacts, 1) {
		assert.Equal(t, "Ada", view.Contacts[0].FullName)
		assert.Equal(t, []string{"climbing"}, view.Contacts[0].Groups)
	}
}

func TestSerializeLists_NeverNil(t *testing.T) {
	assert.Equal(t, []ContactView{}, SerializeContacts(nil))
	assert.Equal(t, []GroupView{}, SerializeGroups(nil))

	empty := (&Group{ID: 1, Name: "empty"}).Serialize()
	assert.NotNil(t, empty.Contacts)
}
