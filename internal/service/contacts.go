package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/kutbudev/contactbook/internal/apperr"
	"github.com/kutbudev/contactbook/internal/metrics"
	"github.com/kutbudev/contactbook/pkg/models"
	"github.com/kutbudev/contactbook/pkg/repository"
	"github.com/sirupsen/logrus"
)

// CreateContactInput is the body of POST /contact.
type CreateContactInput struct {
	FullName string  `json:"full_name" binding:"required,max=100"`
	Email    string  `json:"email" binding:"required,max=100"`
	Address  *string `json:"address" binding:"omitempty,max=200"`
	Phone    *string `json:"phone" binding:"omitempty,max=10"`
	Groups   []uint  `json:"groups"`
}

// UpdateContactInput is the body of PUT /contact/{id}. Absent keys are left unchanged;
// an explicit null clears a nullable column.
type UpdateContactInput struct {
	FullName *string `json:"full_name" binding:"omitnil,min=1,max=100"`
	Email    *string `json:"email" binding:"omitnil,min=1,max=100"`
	Address  *string `json:"address" binding:"omitnil,max=200"`
	Phone    *string `json:"phone" binding:"omitnil,max=10"`

	// keys sent in the body, set by UnmarshalJSON
	present map[string]bool
}

func (in *UpdateContactInput) UnmarshalJSON(b []byte) error {
	type body UpdateContactInput
	var decoded body
	if err := json.Unmarshal(b, &decoded); err != nil {
		return err
	}
	present, err := jsonKeys(b)
	if err != nil {
		return err
	}
	*in = UpdateContactInput(decoded)
	in.present = present
	return nil
}

// columns maps the sent fields to column values. A null full_name or email is rejected.
func (in UpdateContactInput) columns() (map[string]any, error) {
	fields := []optionalColumn{
		{name: "full_name", value: in.FullName},
		{name: "email", value: in.Email},
		{name: "address", value: in.Address, nullable: true},
		{name: "phone", value: in.Phone, nullable: true},
	}
	return buildColumns(fields, in.present)
}

// DeletedContact is returned by Delete.
type DeletedContact struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
}

type ContactService struct {
	db       *repository.Database
	contacts *repository.ContactRepository
	linker   *relationLinker
	log      logrus.FieldLogger
}

func NewContactService(db *repository.Database, m *metrics.Metrics, log logrus.FieldLogger) *ContactService {
	log = log.WithField("component", "contacts")
	return &ContactService{
		db:       db,
		contacts: repository.NewContactRepository(db),
		linker: &relationLinker{
			db:        db,
			relations: repository.NewRelationRepository(db),
			metrics:   m,
			log:       log,
		},
		log: log,
	}
}

func (s *ContactService) List(ctx context.Context) ([]models.ContactView, error) {
	contacts, err := s.contacts.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return models.SerializeContacts(contacts), nil
}

func (s *ContactService) Get(ctx context.Context, id uint) (models.ContactView, error) {
	contact, err := s.find(ctx, id)
	if err != nil {
		return models.ContactView{}, err
	}
	return contact.Serialize(), nil
}

// Create inserts the contact, then one relation per group id. The response is built
// once, after every relation has been attempted.
func (s *ContactService) Create(ctx context.Context, in CreateContactInput) (models.ContactView, error) {
	contact := &models.Contact{
		FullName: in.FullName,
		Email:    in.Email,
		Address:  in.Address,
		Phone:    in.Phone,
	}
	err := s.db.TxFn(ctx, func(ctx context.Context) error {
		return s.contacts.Create(ctx, contact)
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return models.ContactView{}, apperr.Wrap(http.StatusBadRequest, MsgEmailNotUnique, err)
		}
		return models.ContactView{}, apperr.Internal(err)
	}

	linked := 0
	for _, groupID := range in.Groups {
		if s.linker.link(ctx, "contact", contact.ID, groupID) {
			linked++
		}
	}
	s.log.WithFields(logrus.Fields{
		"contact_id": contact.ID,
		"relations":  linked,
		"requested":  len(in.Groups),
	}).Info("contact created")

	return s.Get(ctx, contact.ID)
}

// Update applies the fields present in the input. The contact must exist.
func (s *ContactService) Update(ctx context.Context, id uint, in UpdateContactInput) (models.ContactView, error) {
	contact, err := s.find(ctx, id)
	if err != nil {
		return models.ContactView{}, err
	}
	columns, err := in.columns()
	if err != nil {
		return models.ContactView{}, err
	}
	err = s.db.TxFn(ctx, func(ctx context.Context) error {
		return s.contacts.Update(ctx, contact, columns)
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return models.ContactView{}, apperr.Wrap(http.StatusBadRequest, MsgEmailNotUnique, err)
		}
		return models.ContactView{}, apperr.Internal(err)
	}
	return s.Get(ctx, id)
}

// Delete removes the contact. Its relation rows stay behind, detached.
func (s *ContactService) Delete(ctx context.Context, id uint) (DeletedContact, error) {
	contact, err := s.find(ctx, id)
	if err != nil {
		return DeletedContact{}, err
	}
	err = s.db.TxFn(ctx, func(ctx context.Context) error {
		return s.contacts.Delete(ctx, id)
	})
	if err != nil {
		return DeletedContact{}, apperr.Internal(err)
	}
	s.log.WithFields(logrus.Fields{
		"contact_id":         id,
		"detached_relations": len(contact.Relations),
	}).Info("contact deleted")
	return DeletedContact{ID: contact.ID, FullName: contact.FullName}, nil
}

func (s *ContactService) find(ctx context.Context, id uint) (*models.Contact, error) {
	contact, err := s.contacts.Get(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound(MsgContactNotFound)
		}
		return nil, apperr.Internal(err)
	}
	return contact, nil
}
