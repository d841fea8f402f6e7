package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/contactbook/internal/apperr"
)

// parseID reads the :id path parameter. Anything that is not a positive integer is
// reported as the resource's not-found error, since no such row can exist.
func parseID(c *gin.Context, notFound string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		_ = c.Error(apperr.NotFound(notFound))
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes and validates the body; failures become a 400 with msg.
func bindJSON(c *gin.Context, dst any, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(apperr.Wrap(http.StatusBadRequest, msg, err))
		return false
	}
	return true
}
