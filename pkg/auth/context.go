package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const staffIDKey contextKey = "staff_id"

// ErrStaffIDNotFound is returned when no StaffID exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrStaffIDNotFound = errors.New("staff_id not found in context")

// StaffIDFromCtx extracts the authenticated staff member's ID from the request context.
// Returns uuid.Nil and ErrStaffIDNotFound if no StaffID is set (unauthenticated request).
func StaffIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	staffID, ok := ctx.Value(staffIDKey).(uuid.UUID)
	if !ok || staffID == uuid.Nil {
		return uuid.Nil, ErrStaffIDNotFound
	}
	return staffID, nil
}

// WithStaffID returns a new context with the given StaffID attached.
// Used by authentication middleware after validating the session.
func WithStaffID(ctx context.Context, staffID uuid.UUID) context.Context {
	return context.WithValue(ctx, staffIDKey, staffID)
}
