package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstsim/internal/service"
)

// StatsHandler handles learner statistics endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// MyStats handles GET /api/v1/stats and reports the caller's own aggregates.
func (h *StatsHandler) MyStats(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	stats, err := h.statsService.LearnerStats(c.Request.Context(), userID, userID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}

// LearnerStats handles GET /api/v1/stats/learners/:id (admin only).
func (h *StatsHandler) LearnerStats(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	learnerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid learner ID")
		return
	}

	stats, err := h.statsService.LearnerStats(c.Request.Context(), learnerID, userID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}
