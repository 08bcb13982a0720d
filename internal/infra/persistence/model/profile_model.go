// Package model contains the GORM structs mirroring the PostgreSQL schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileModel mirrors the 'profiles' table. The profile ID doubles as the
// user ID across every role and assignment table.
type ProfileModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email       string    `gorm:"type:varchar(255);unique;not null"`
	FullName    string    `gorm:"type:varchar(100);not null"`
	PhoneNumber string    `gorm:"type:varchar(30)"`
	Avatar      string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Role            *RoleModel            `gorm:"foreignKey:UserID"`
	Authentications []AuthenticationModel `gorm:"foreignKey:UserID"`
	RefreshTokens   []RefreshTokenModel   `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}

// RoleModel mirrors the 'roles' table. Each profile carries exactly one role.
type RoleModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}
