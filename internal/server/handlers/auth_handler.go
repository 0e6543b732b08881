package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mbodji/macrolog/pkg/token"
)

// AuthHandler handles registration, login and session endpoints.
type AuthHandler struct {
	svc    AuthService
	tokens *token.Service
	logger *zap.Logger
}

// NewAuthHandler constructs the auth HTTP adapter.
func NewAuthHandler(svc AuthService, tokens *token.Service, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, tokens: tokens, logger: logger}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup registers an account and opens a session.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email, fullName and password are required")
		return
	}

	user, err := h.svc.Signup(c.Request.Context(), req.Email, req.FullName, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.setSessionCookie(c, user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}

// Login verifies credentials and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}

	user, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.setSessionCookie(c, user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Check returns the authenticated account.
func (h *AuthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "user": CurrentUser(c)})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, userID primitive.ObjectID) error {
	tok, err := h.tokens.Generate(userID)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(sessionCookie, tok, int(h.tokens.TTL().Seconds()), "/", "", true, true)
	return nil
}
