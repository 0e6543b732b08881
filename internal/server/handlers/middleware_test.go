package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mbodji/macrolog/internal/domain/errvalues"
	"github.com/mbodji/macrolog/internal/domain/models"
	"github.com/mbodji/macrolog/pkg/token"
)

type userLookupStub struct {
	user *models.User
}

func (s *userLookupStub) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, errvalues.ErrUserNotFound
	}
	return s.user, nil
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := token.New("test-secret", time.Hour)
	user := &models.User{ID: primitive.NewObjectID(), Email: "jo@example.com"}

	newRouter := func(users UserLookup) *gin.Engine {
		r := gin.New()
		r.GET("/me", RequireAuth(tokens, users, nil), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"email": CurrentUser(c).Email})
		})
		return r
	}

	t.Run("valid session", func(t *testing.T) {
		r := newRouter(&userLookupStub{user: user})
		signed, err := tokens.Generate(user.ID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: signed})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "jo@example.com")
	})

	t.Run("missing cookie", func(t *testing.T) {
		r := newRouter(&userLookupStub{user: user})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		r := newRouter(&userLookupStub{user: user})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: "tampered"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deleted account", func(t *testing.T) {
		r := newRouter(&userLookupStub{})
		signed, err := tokens.Generate(user.ID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: signed})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
