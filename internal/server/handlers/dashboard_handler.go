package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardHandler handles the summary endpoint.
type DashboardHandler struct {
	svc    DashboardService
	logger *zap.Logger
}

// NewDashboardHandler constructs the dashboard HTTP adapter.
func NewDashboardHandler(svc DashboardService, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, logger: logger}
}

// Get returns the dashboard for the requested date (today when omitted).
func (h *DashboardHandler) Get(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		badRequest(c, "invalid date")
		return
	}

	data, err := h.svc.Get(c.Request.Context(), CurrentUser(c).ID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "dashboard": data})
}
