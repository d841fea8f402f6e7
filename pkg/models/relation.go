package models

// RelationContactGroup is one membership of a contact in a group. Both keys are
// nullable and the pair is not unique.
type RelationContactGroup struct {
	ID        uint  `json:"id" gorm:"primaryKey"`
	ContactID *uint `json:"contact_id" gorm:"index"`
	GroupID   *uint `json:"group_id" gorm:"index"`

	// Foreign Key Relations
	Contact *Contact `json:"-" gorm:"foreignKey:ContactID"`
	Group   *Group   `json:"-" gorm:"foreignKey:GroupID"`
}

// TableName specifies the table name for GORM
func (RelationContactGroup) TableName() string {
	return "relation_contact_group"
}
