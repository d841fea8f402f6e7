package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/contactbook/internal/service"
	"github.com/kutbudev/contactbook/pkg/models"
)

// ContactService is the contact use-case surface the handlers need.
type ContactService interface {
	List(ctx context.Context) ([]models.ContactView, error)
	Get(ctx context.Context, id uint) (models.ContactView, error)
	Create(ctx context.Context, in service.CreateContactInput) (models.ContactView, error)
	Update(ctx context.Context, id uint, in service.UpdateContactInput) (models.ContactView, error)
	Delete(ctx context.Context, id uint) (service.DeletedContact, error)
}

type ContactHandler struct {
	contacts ContactService
}

func NewContactHandler(contacts ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// ListContacts retrieves all contacts with their group names.
func (h *ContactHandler) ListContacts(c *gin.Context) {
	contacts, err := h.contacts.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// CreateContact creates a contact and links it to the requested groups.
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var input service.CreateContactInput
	if !bindJSON(c, &input, service.MsgInvalidPayload) {
		return
	}

	contact, err := h.contacts.Create(c.Request.Context(), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// GetContact retrieves a single contact by its ID.
func (h *ContactHandler) GetContact(c *gin.Context) {
	id, ok := parseID(c, service.MsgContactNotFound)
	if !ok {
		return
	}

	contact, err := h.contacts.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// UpdateContact changes only the fields present in the body. The contact is looked up
// before the body is parsed, so a missing id wins over a malformed body.
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	id, ok := parseID(c, service.MsgContactNotFound)
	if !ok {
		return
	}
	if _, err := h.contacts.Get(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	var input service.UpdateContactInput
	if !bindJSON(c, &input, service.MsgInvalidPayload) {
		return
	}

	contact, err := h.contacts.Update(c.Request.Context(), id, input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// DeleteContact deletes a contact and echoes its id and name.
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	id, ok := parseID(c, service.MsgContactNotFound)
	if !ok {
		return
	}

	deleted, err := h.contacts.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
