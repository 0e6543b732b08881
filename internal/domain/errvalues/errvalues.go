package errvalues

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrLogNotFound      = errors.New("daily log not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("email already exists")
	ErrProductExists    = errors.New("a product with this name already exists")
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrNotOwner         = errors.New("operation allowed only for the owner or an admin")
	ErrWrongCredentials = errors.New("invalid credentials")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidToken     = errors.New("invalid token")
)
