package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mbodji/macrolog/internal/domain/models"
	"github.com/mbodji/macrolog/internal/service/workouts"
)

// WorkoutHandler handles training session endpoints.
type WorkoutHandler struct {
	svc    WorkoutService
	logger *zap.Logger
}

// NewWorkoutHandler constructs the workouts HTTP adapter.
func NewWorkoutHandler(svc WorkoutService, logger *zap.Logger) *WorkoutHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkoutHandler{svc: svc, logger: logger}
}

type createWorkoutRequest struct {
	Date      string            `json:"date" binding:"required"`
	Name      string            `json:"name" binding:"required"`
	Duration  int               `json:"duration"`
	Exercises []models.Exercise `json:"exercises"`
}

type updateWorkoutRequest struct {
	Date      *string           `json:"date,omitempty"`
	Name      *string           `json:"name,omitempty"`
	Duration  *int              `json:"duration,omitempty"`
	Exercises []models.Exercise `json:"exercises,omitempty"`
}

// List returns the caller's sessions for one day.
func (h *WorkoutHandler) List(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		badRequest(c, "invalid date")
		return
	}

	items, err := h.svc.GetByDate(c.Request.Context(), CurrentUser(c).ID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "workouts": items})
}

// Create stores a new session.
func (h *WorkoutHandler) Create(c *gin.Context) {
	var req createWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "date and name are required")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		badRequest(c, "invalid date")
		return
	}

	workout, err := h.svc.Create(c.Request.Context(), CurrentUser(c).ID, workouts.CreateInput{
		Date:      date,
		Name:      req.Name,
		Duration:  req.Duration,
		Exercises: req.Exercises,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "workout": workout})
}

// Update edits one of the caller's sessions.
func (h *WorkoutHandler) Update(c *gin.Context) {
	workoutID, err := parseObjectID(c.Param("workoutId"))
	if err != nil {
		badRequest(c, "invalid workoutId")
		return
	}

	var req updateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid workout payload")
		return
	}

	input := workouts.UpdateInput{
		Name:      req.Name,
		Duration:  req.Duration,
		Exercises: req.Exercises,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			badRequest(c, "invalid date")
			return
		}
		input.Date = &date
	}

	workout, err := h.svc.Update(c.Request.Context(), CurrentUser(c).ID, workoutID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "workout": workout})
}

// Delete removes one of the caller's sessions.
func (h *WorkoutHandler) Delete(c *gin.Context) {
	workoutID, err := parseObjectID(c.Param("workoutId"))
	if err != nil {
		badRequest(c, "invalid workoutId")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), CurrentUser(c).ID, workoutID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "workout deleted"})
}
