package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mbodji/macrolog/internal/server/handlers"
	"github.com/mbodji/macrolog/pkg/token"
)

// Handlers groups the HTTP adapters wired into the engine.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Diary     *handlers.DiaryHandler
	Products  *handlers.ProductHandler
	Users     *handlers.UserHandler
	Workouts  *handlers.WorkoutHandler
	Dashboard *handlers.DashboardHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, tokens *token.Service, users handlers.UserLookup, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)

	authed := api.Group("")
	authed.Use(handlers.RequireAuth(tokens, users, logger))

	authed.GET("/auth/check", h.Auth.Check)

	authed.GET("/users/profile", h.Users.GetProfile)
	authed.PATCH("/users/profile", h.Users.UpdateProfile)

	authed.GET("/products", h.Products.List)
	authed.POST("/products", h.Products.Create)
	authed.POST("/products/import", h.Products.Import)
	authed.PATCH("/products/:productId", h.Products.Update)
	authed.DELETE("/products/:productId", h.Products.Delete)

	authed.GET("/diary", h.Diary.GetLog)
	authed.POST("/diary/add-item", h.Diary.AddItem)
	authed.POST("/diary/add-composite", h.Diary.AddComposite)
	authed.PATCH("/diary/item/:itemId", h.Diary.UpdateItem)
	authed.DELETE("/diary/item/:itemId", h.Diary.RemoveItem)

	authed.GET("/workouts", h.Workouts.List)
	authed.POST("/workouts", h.Workouts.Create)
	authed.PATCH("/workouts/:workoutId", h.Workouts.Update)
	authed.DELETE("/workouts/:workoutId", h.Workouts.Delete)

	authed.GET("/dashboard", h.Dashboard.Get)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
			zap.String("client_ip", c.ClientIP()))
	}
}
