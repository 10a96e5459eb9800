// Package authz holds the request principal and the access rules applied on
// top of authentication. Evaluation order is fixed: authentication first
// (middleware), then role, then ownership.
package authz

import (
	"context"

	"artdb/internal/data/entity"

	"github.com/google/uuid"
)

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Role     entity.UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == entity.RoleAdmin
}

// IsStaff reports whether the principal may moderate other users' content.
func (p Principal) IsStaff() bool {
	return p.Role == entity.RoleAdmin || p.Role == entity.RoleModerator
}

// CanModifyContent decides whether p may mutate a review or comment owned by
// authorID: staff always, otherwise only the author.
func CanModifyContent(p Principal, authorID uuid.UUID) bool {
	if p.IsStaff() {
		return true
	}
	return p.UserID == authorID
}

type contextKey struct{}

var principalKey contextKey

// WithPrincipal attaches the authenticated principal to the request context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// FromContext extracts the principal set by the auth middleware.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
