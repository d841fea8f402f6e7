package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/contactbook/internal/service"
	"github.com/kutbudev/contactbook/pkg/models"
)

// GroupService is the group use-case surface the handlers need.
type GroupService interface {
	List(ctx context.Context) ([]models.GroupView, error)
	Get(ctx context.Context, id uint) (models.GroupView, error)
	Create(ctx context.Context, in service.CreateGroupInput) (models.GroupView, error)
	Update(ctx context.Context, id uint, in service.UpdateGroupInput) (models.GroupView, error)
	Delete(ctx context.Context, id uint) (service.DeletedGroup, error)
}

type GroupHandler struct {
	groups GroupService
}

func NewGroupHandler(groups GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// ListGroups retrieves all groups with their contacts.
func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// CreateGroup creates a group and links the listed contacts to it.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var input service.CreateGroupInput
	if !bindJSON(c, &input, service.MsgGroupCreateFailed) {
		return
	}

	group, err := h.groups.Create(c.Request.Context(), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// GetGroup retrieves a single group by its ID.
func (h *GroupHandler) GetGroup(c *gin.Context) {
	id, ok := parseID(c, service.MsgGroupNotFound)
	if !ok {
		return
	}

	group, err := h.groups.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// UpdateGroup renames a group.
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	id, ok := parseID(c, service.MsgGroupNotFound)
	if !ok {
		return
	}
	if _, err := h.groups.Get(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	var input service.UpdateGroupInput
	if !bindJSON(c, &input, service.MsgInvalidPayload) {
		return
	}

	group, err := h.groups.Update(c.Request.Context(), id, input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// DeleteGroup deletes a group and echoes its id and name.
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	id, ok := parseID(c, service.MsgGroupNotFound)
	if !ok {
		return
	}

	deleted, err := h.groups.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
