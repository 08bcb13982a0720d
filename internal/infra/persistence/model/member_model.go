package model

import (
	"time"

	"github.com/google/uuid"
)

// OwnerModel mirrors the 'owners' table. Cars reference owners through this
// record's ID, never through the profile directly.
type OwnerModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;unique;not null"`
	CreatedAt time.Time

	Cars []CarModel `gorm:"foreignKey:OwnerID"`
}

// TableName explicitly sets the table name for GORM.
func (OwnerModel) TableName() string {
	return "owners"
}

// ManagerModel mirrors the 'managers' table.
type ManagerModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;unique;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ManagerModel) TableName() string {
	return "managers"
}

// DriverModel mirrors the 'drivers' table. Last reported position is stored
// as a lon/lat pair for the tracking tab; both columns are nil until the
// driver first reports in.
type DriverModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;unique;not null"`
	Longitude *float64  `gorm:"type:decimal(11,8)"`
	Latitude  *float64  `gorm:"type:decimal(10,8)"`
	LocatedAt *time.Time
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (DriverModel) TableName() string {
	return "drivers"
}
