package postgres

import (
	"context"

	"drivelink/internal/domain/entity"
	domainerrors "drivelink/internal/domain/errors"
	"drivelink/internal/domain/repository"
	"drivelink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// roleRepository implements the domain.RoleRepository interface.
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository is the constructor for roleRepository.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

// CreateRole binds a role to a user.
func (repo *roleRepository) CreateRole(ctx context.Context, userID uuid.UUID, role entity.Role) error {
	roleM := &model.RoleModel{
		UserID: userID,
		Role:   role.String(),
	}

	if err := repo.db.WithContext(ctx).Create(roleM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("role already bound to user")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create role")
	}

	return nil
}

// FindRoleByUserID retrieves the role bound to a user.
func (repo *roleRepository) FindRoleByUserID(ctx context.Context, userID uuid.UUID) (entity.Role, error) {
	var roleM model.RoleModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&roleM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repository.ErrRoleNotFound
		}

		return "", errors.WithStack(err)
	}

	return entity.Role(roleM.Role), nil
}

// ListUsersByRole returns the merged profile+role read model for every user
// holding the given role, newest first.
func (repo *roleRepository) ListUsersByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	type row struct {
		model.ProfileModel
		Role string
	}

	var rows []row
	if err := repo.db.WithContext(ctx).
		Table("profiles").
		Select("profiles.*, roles.role").
		Joins("JOIN roles ON roles.user_id = profiles.id").
		Where("roles.role = ?", role.String()).
		Order("profiles.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	users := make([]*entity.User, 0, len(rows))
	for i := range rows {
		users = append(users, &entity.User{
			ID:          rows[i].ID,
			Email:       rows[i].Email,
			FullName:    rows[i].FullName,
			PhoneNumber: rows[i].PhoneNumber,
			Avatar:      rows[i].Avatar,
			Role:        entity.Role(rows[i].Role),
			CreatedAt:   rows[i].CreatedAt,
		})
	}

	return users, nil
}
