package models

// Contact represents a person in the address book
type Contact struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	FullName string  `json:"full_name" gorm:"not null;size:100"`
	Email    string  `json:"email" gorm:"not null;size:100;uniqueIndex:contact_email_key"`
	Address  *string `json:"address" gorm:"size:200"`
	Phone    *string `json:"phone" gorm:"size:10"`

	// One-to-Many Relations
	Relations []*RelationContactGroup `json:"-" gorm:"foreignKey:ContactID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for GORM
func (Contact) TableName() string {
	return "contact"
}

// ContactView is the JSON shape of a contact. Groups holds group names only.
type ContactView struct {
	ID       uint     `json:"id"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Address  *string  `json:"address"`
	Phone    *string  `json:"phone"`
	Groups   []string `json:"groups"`
}

// Serialize builds the view of c. Relations must be loaded together with their Group;
// relations detached from a group are skipped.
func (c *Contact) Serialize() ContactView {
	groups := make([]string, 0, len(c.Relations))
	for _, r := range c.Relations {
		if r == nil || r.Group == nil {
			continue
		}
		groups = append(groups, r.Group.Name)
	}
	return ContactView{
		ID:       c.ID,
		FullName: c.FullName,
		Email:    c.Email,
		Address:  c.Address,
		Phone:    c.Phone,
		Groups:   groups,
	}
}

// SerializeContacts serializes a list, never returning nil.
func SerializeContacts(contacts []*Contact) []ContactView {
	out := make([]ContactView, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, c.Serialize())
	}
	return out
}
