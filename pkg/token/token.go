// Package token issues and verifies the JWT session tokens carried by the
// "jwt" cookie.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mbodji/macrolog/internal/domain/errvalues"
)

// Claims is the JWT payload: the authenticated user's id plus the standard
// registered claims.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Service signs and parses session tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// New builds a token service with the given signing secret and token TTL.
func New(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Generate signs a new HS256 token for the user.
func (s *Service) Generate(userID primitive.ObjectID) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates a token string and returns the user id it identifies.
func (s *Service) Parse(tokenString string) (primitive.ObjectID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return primitive.NilObjectID, errvalues.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return primitive.NilObjectID, errvalues.ErrInvalidToken
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, errvalues.ErrInvalidToken
	}
	return userID, nil
}
