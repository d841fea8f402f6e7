package repository

import (
	"context"

	"github.com/kutbudev/contactbook/pkg/models"
	"gorm.io/gorm"
)

// GroupRepository reads and writes the group table.
type GroupRepository struct {
	db *Database
}

func NewGroupRepository(db *Database) *GroupRepository {
	return &GroupRepository{db: db}
}

// withContacts loads what Group.Serialize needs: each member contact together with
// the names of all of that contact's groups.
func withContacts(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Relations", orderByID).
		Preload("Relations.Contact").
		Preload("Relations.Contact.Relations", orderByID).
		Preload("Relations.Contact.Relations.Group")
}

// List returns every group ordered by id.
func (r *GroupRepository) List(ctx context.Context) ([]*models.Group, error) {
	var groups []*models.Group
	if err := withContacts(r.db.Conn(ctx)).Order("id").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// Get loads one group with its contacts. Missing rows yield gorm.ErrRecordNotFound.
func (r *GroupRepository) Get(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := withContacts(r.db.Conn(ctx)).First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	return r.db.Conn(ctx).Omit("Relations").Create(group).Error
}

// Update writes only the given columns.
func (r *GroupRepository) Update(ctx context.Context, group *models.Group, columns map[string]any) error {
	if len(columns) == 0 {
		return nil
	}
	return r.db.Conn(ctx).Model(&models.Group{ID: group.ID}).Updates(columns).Error
}

// Delete removes the group row. Relation rows are detached by the foreign key policy.
func (r *GroupRepository) Delete(ctx context.Context, id uint) error {
	return r.db.Conn(ctx).Delete(&models.Group{}, id).Error
}
