package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mbodji/macrolog/internal/domain/errvalues"
)

// statusFor maps domain errors onto HTTP status codes. Everything the
// taxonomy does not name is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errvalues.ErrProductNotFound),
		errors.Is(err, errvalues.ErrItemNotFound),
		errors.Is(err, errvalues.ErrLogNotFound),
		errors.Is(err, errvalues.ErrUserNotFound),
		errors.Is(err, errvalues.ErrWorkoutNotFound):
		return http.StatusNotFound
	case errors.Is(err, errvalues.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, errvalues.ErrUserExists),
		errors.Is(err, errvalues.ErrProductExists):
		return http.StatusConflict
	case errors.Is(err, errvalues.ErrWrongCredentials),
		errors.Is(err, errvalues.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, errvalues.ErrNotOwner):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"success": false, "message": err.Error()})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

// parseDate accepts the client's plain date format and full timestamps.
// An empty value means today.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func parseObjectID(value string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(value)
}
