package models

// Group represents a named set of contacts
type Group struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;size:100"`

	// One-to-Many Relations
	Relations []*RelationContactGroup `json:"-" gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for GORM
func (Group) TableName() string {
	return "group"
}

// GroupView is the JSON shape of a group. Unlike ContactView.Groups, Contacts are
// fully serialized.
type GroupView struct {
	ID       uint          `json:"id"`
	Name     string        `json:"name"`
	Contacts []ContactView `json:"contacts"`
}

// Serialize builds the view of g. Relations must be loaded with Contact and each
// contact's own Relations.Group, otherwise the nested group names come out empty.
func (g *Group) Serialize() GroupView {
	contacts := make([]ContactView, 0, len(g.Relations))
	for _, r := range g.Relations {
		if r == nil || r.Contact == nil {
			continue
		}
		contacts = append(contacts, r.Contact.Serialize())
	}
	return GroupView{
		ID:       g.ID,
		Name:     g.Name,
		Contacts: contacts,
	}
}

// SerializeGroups serializes a list, never returning nil.
func SerializeGroups(groups []*Group) []GroupView {
	out := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Serialize())
	}
	return out
}
