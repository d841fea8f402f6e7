package repository

import (
	"context"

	"github.com/kutbudev/contactbook/pkg/models"
)

// RelationRepository writes contact/group memberships.
type RelationRepository struct {
	db *Database
}

func NewRelationRepository(db *Database) *RelationRepository {
	return &RelationRepository{db: db}
}

// Create inserts one membership. Duplicates of an existing pair are allowed.
func (r *RelationRepository) Create(ctx context.Context, contactID, groupID uint) (*models.RelationContactGroup, error) {
	relation := &models.RelationContactGroup{
		ContactID: &contactID,
		GroupID:   &groupID,
	}
	if err := r.db.Conn(ctx).Omit("Contact", "Group").Create(relation).Error; err != nil {
		return nil, err
	}
	return relation, nil
}
