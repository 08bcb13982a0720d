package repository

import (
	"context"
	"errors"

	"drivelink/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRoleNotFound is returned when no role row is bound to a user.
var ErrRoleNotFound = errors.New("role not found")

// RoleRepository defines the operations for the user→role binding. A role is
// bound exactly once at registration and never changes afterwards.
type RoleRepository interface {
	// CreateRole binds a role to a user.
	CreateRole(ctx context.Context, userID uuid.UUID, role entity.Role) error

	// FindRoleByUserID retrieves the role bound to a user.
	FindRoleByUserID(ctx context.Context, userID uuid.UUID) (entity.Role, error)

	// ListUsersByRole returns the merged profile+role read model for every
	// user holding the given role, newest first.
	ListUsersByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)
}
