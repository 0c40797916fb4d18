// internal/services/errors.go
package services

import (
	"errors"

	"github.com/google/uuid"

	"github.com/stylehaus/atelier-backend/internal/models"
)

// Sentinel errors translated to HTTP status codes by the handlers. Services
// wrap them with context via fmt.Errorf("...: %w", Err...).
var (
	// ErrNotFound covers both missing records and records the caller is not
	// allowed to see; visibility is concealed, so both read as not-found.
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrDuplicate = errors.New("duplicate")
)

// Actor identifies the authenticated caller for permission decisions.
// A nil *Actor means the request is anonymous.
type Actor struct {
	UserID uuid.UUID
	Role   models.UserRole
}

func (a *Actor) IsStaff() bool {
	return a != nil && a.Role == models.UserRoleStaff
}
