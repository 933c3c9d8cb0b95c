package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstsim/internal/domain"
	"gstsim/internal/service"
)

// InvoiceHandler handles invoice simulation endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.StartInvoiceSimulationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invoice_number and invoice_date are required")
		return
	}
	input.CreatedBy = userID

	inv, err := h.invoiceService.StartSimulation(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// GetByID handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	inv, err := h.invoiceService.GetByID(c.Request.Context(), invoiceID, userID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// List handles GET /api/v1/invoices with an optional chapter_id filter.
// Without a filter it lists the caller's own invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)

	if chapterID := c.Query("chapter_id"); chapterID != "" {
		invoices, total, err := h.invoiceService.ListByChapter(c.Request.Context(), chapterID, offset, limit)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
		return
	}

	invoices, total, err := h.invoiceService.ListByLearner(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// UpdateLineItems handles PUT /api/v1/invoices/:id/line-items
func (h *InvoiceHandler) UpdateLineItems(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	var req struct {
		LineItems []domain.InvoiceLineItem `json:"line_items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "line_items is required")
		return
	}

	inv, err := h.invoiceService.UpdateLineItems(c.Request.Context(), &service.UpdateLineItemsInput{
		InvoiceID: invoiceID,
		CallerID:  userID,
		Role:      role,
		LineItems: req.LineItems,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Submit handles POST /api/v1/invoices/:id/submit
func (h *InvoiceHandler) Submit(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	inv, err := h.invoiceService.Submit(c.Request.Context(), invoiceID, userID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// ApplyTransition handles POST /api/v1/invoices/:id/transition (admin only).
func (h *InvoiceHandler) ApplyTransition(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	var req struct {
		Event domain.FilingEvent `json:"event" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "event is required (file, reject, or cancel)")
		return
	}

	inv, err := h.invoiceService.ApplyTransition(c.Request.Context(), invoiceID, req.Event, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// RecordProgress handles PUT /api/v1/invoices/:id/progress
func (h *InvoiceHandler) RecordProgress(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	var input service.ProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body is required")
		return
	}

	inv, err := h.invoiceService.RecordProgress(c.Request.Context(), invoiceID, userID, role, &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Delete handles DELETE /api/v1/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), invoiceID, userID, role); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice deleted"})
}
