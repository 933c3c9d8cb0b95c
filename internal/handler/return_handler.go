package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstsim/internal/domain"
	"gstsim/internal/middleware"
	"gstsim/internal/service"
	"gstsim/internal/xlsxexport"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReturnHandler handles GST return simulation endpoints.
type ReturnHandler struct {
	returnService service.ReturnService
}

// NewReturnHandler creates a new ReturnHandler.
func NewReturnHandler(returnService service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

// Create handles POST /api/v1/returns
func (h *ReturnHandler) Create(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.StartReturnSimulationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "return_type, financial_year, period, and gstin are required")
		return
	}
	input.CreatedBy = userID

	ret, err := h.returnService.StartSimulation(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, ret)
}

// GetByID handles GET /api/v1/returns/:id
func (h *ReturnHandler) GetByID(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid return ID")
		return
	}

	ret, err := h.returnService.GetByID(c.Request.Context(), returnID, userID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ret)
}

// List handles GET /api/v1/returns and lists the caller's own returns.
func (h *ReturnHandler) List(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)

	returns, total, err := h.returnService.ListByLearner(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, returns, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// UpdateSection handles PUT /api/v1/returns/:id/sections/:section
func (h *ReturnHandler) UpdateSection(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid return ID")
		return
	}

	var section domain.ReturnSection
	if err := c.ShouldBindJSON(&section); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "section body is required")
		return
	}

	ret, err := h.returnService.UpdateSection(c.Request.Context(), &service.UpdateSectionInput{
		ReturnID:    returnID,
		CallerID:    userID,
		Role:        role,
		SectionName: c.Param("section"),
		Section:     section,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ret)
}

// Submit handles POST /api/v1/returns/:id/submit
func (h *ReturnHandler) Submit(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid return ID")
		return
	}

	ret, err := h.returnService.Submit(c.Request.Context(), returnID, userID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ret)
}

// ApplyTransition handles POST /api/v1/returns/:id/transition (admin only).
func (h *ReturnHandler) ApplyTransition(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid return ID")
		return
	}

	var req struct {
		Event domain.FilingEvent `json:"event" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "event is required (file, reject, or cancel)")
		return
	}

	ret, err := h.returnService.ApplyTransition(c.Request.Context(), returnID, req.Event, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ret)
}

// RecordProgress handles PUT /api/v1/returns/:id/progress
func (h *ReturnHandler) RecordProgress(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid return ID")
		return
	}

	var input service.ProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body is required")
		return
	}

	ret, err := h.returnService.RecordProgress(c.Request.Context(), returnID, userID, role, &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ret)
}

// Export handles GET /api/v1/returns/export and streams the caller's returns
// as an Excel workbook.
func (h *ReturnHandler) Export(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var all []domain.GSTReturn
	const pageSize = 200
	for offset := 0; ; offset += pageSize {
		page, total, err := h.returnService.ListByLearner(c.Request.Context(), userID, offset, pageSize)
		if err != nil {
			HandleError(c, err)
			return
		}
		all = append(all, page...)
		if len(all) >= total || len(page) == 0 {
			break
		}
	}

	var buf bytes.Buffer
	if err := xlsxexport.WriteReturns(&buf, all); err != nil {
		HandleError(c, err)
		return
	}

	email, _ := c.Get(middleware.ContextKeyEmail)
	name, _ := email.(string)
	filename := xlsxexport.BuildFilename(name)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Delete handles DELETE /api/v1/returns/:id
func (h *ReturnHandler) Delete(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid return ID")
		return
	}

	if err := h.returnService.Delete(c.Request.Context(), returnID, userID, role); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "return deleted"})
}
