package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstsim/internal/engine/fieldcheck"
)

// ValidationHandler exposes standalone field validation for simulation UIs.
type ValidationHandler struct{}

// NewValidationHandler creates a new ValidationHandler.
func NewValidationHandler() *ValidationHandler {
	return &ValidationHandler{}
}

// ValidateField handles POST /api/v1/validate-field
func (h *ValidationHandler) ValidateField(c *gin.Context) {
	var req struct {
		Field string `json:"field" binding:"required"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "field is required")
		return
	}

	RespondOK(c, fieldcheck.Check(req.Field, req.Value))
}

// ListFields handles GET /api/v1/validate-field/fields
func (h *ValidationHandler) ListFields(c *gin.Context) {
	RespondOK(c, gin.H{"fields": fieldcheck.KnownFields()})
}
