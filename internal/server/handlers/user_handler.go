package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mbodji/macrolog/internal/service/users"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	svc    UserService
	logger *zap.Logger
}

// NewUserHandler constructs the users HTTP adapter.
func NewUserHandler(svc UserService, logger *zap.Logger) *UserHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserHandler{svc: svc, logger: logger}
}

// GetProfile returns the caller's account with profile and weight history.
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.svc.GetProfile(c.Request.Context(), CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateProfile applies profile changes for the caller.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var update users.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, "invalid profile payload")
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), CurrentUser(c).ID, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
