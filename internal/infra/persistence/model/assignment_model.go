package model

import (
	"time"

	"github.com/google/uuid"
)

// CarDriverModel mirrors the 'car_drivers' table. The partial unique index on
// car_id enforces at most one open assignment per car at the database level.
type CarDriverModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	CarID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_car_drivers_active,where:unassigned_at IS NULL"`
	DriverID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	AssignedAt   time.Time  `gorm:"not null"`
	UnassignedAt *time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (CarDriverModel) TableName() string {
	return "car_drivers"
}

// CarManagerModel mirrors the 'car_managers' table. A car may carry several
// concurrently open manager assignments.
type CarManagerModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	CarID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ManagerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AssignedAt   time.Time `gorm:"not null"`
	UnassignedAt *time.Time
}

// TableName explicitly sets the table name for GORM.
func (CarManagerModel) TableName() string {
	return "car_managers"
}
