package model

import (
	"time"

	"github.com/google/uuid"
)

// CarModel mirrors the 'cars' table.
type CarModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	PlateNo   string    `gorm:"type:varchar(20);unique;not null"`
	LibreNo   string    `gorm:"type:varchar(50);not null"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Model     string    `gorm:"type:varchar(100)"`
	Year      int
	Color     string `gorm:"type:varchar(30)"`
	FuelType  string `gorm:"type:varchar(30)"`
	Status    string `gorm:"type:varchar(20);not null;default:available;index"`
	CreatedAt time.Time

	Revenues []CarRevenueModel `gorm:"foreignKey:CarID"`
	Expenses []CarExpenseModel `gorm:"foreignKey:CarID"`
}

// TableName explicitly sets the table name for GORM.
func (CarModel) TableName() string {
	return "cars"
}
