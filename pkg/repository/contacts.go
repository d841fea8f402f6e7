package repository

import (
	"context"

	"github.com/kutbudev/contactbook/pkg/models"
	"gorm.io/gorm"
)

// ContactRepository reads and writes the contact table.
type ContactRepository struct {
	db *Database
}

func NewContactRepository(db *Database) *ContactRepository {
	return &ContactRepository{db: db}
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// withGroups loads what Contact.Serialize needs.
func withGroups(db *gorm.DB) *gorm.DB {
	return db.Preload("Relations", orderByID).Preload("Relations.Group")
}

// List returns every contact ordered by id.
func (r *ContactRepository) List(ctx context.Context) ([]*models.Contact, error) {
	var contacts []*models.Contact
	if err := withGroups(r.db.Conn(ctx)).Order("id").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// Get loads one contact with its relations. Missing rows yield gorm.ErrRecordNotFound.
func (r *ContactRepository) Get(ctx context.Context, id uint) (*models.Contact, error) {
	var contact models.Contact
	if err := withGroups(r.db.Conn(ctx)).First(&contact, id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	return r.db.Conn(ctx).Omit("Relations").Create(contact).Error
}

// Update writes only the given columns.
func (r *ContactRepository) Update(ctx context.Context, contact *models.Contact, columns map[string]any) error {
	if len(columns) == 0 {
		return nil
	}
	return r.db.Conn(ctx).Model(&models.Contact{ID: contact.ID}).Updates(columns).Error
}

// Delete removes the contact row. Relation rows are detached by the foreign key policy.
func (r *ContactRepository) Delete(ctx context.Context, id uint) error {
	return r.db.Conn(ctx).Delete(&models.Contact{}, id).Error
}
