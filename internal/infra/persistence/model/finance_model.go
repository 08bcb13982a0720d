package model

import (
	"time"

	"github.com/google/uuid"
)

// CarRevenueModel mirrors the 'car_revenues' table. Amounts are stored as
// numeric(12,2) to keep currency math exact at the database level.
type CarRevenueModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	CarID       uuid.UUID `gorm:"type:uuid;not null;index:idx_car_revenues_car_date"`
	Amount      float64   `gorm:"type:numeric(12,2);not null"`
	Source      string    `gorm:"type:varchar(20);not null"`
	RevenueDate time.Time `gorm:"not null;index:idx_car_revenues_car_date"`
	Notes       string    `gorm:"type:text"`
	TripID      string    `gorm:"type:varchar(100)"`
	CreatedAt   time.Time
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName explicitly sets the table name for GORM.
func (CarRevenueModel) TableName() string {
	return "car_revenues"
}

// CarExpenseModel mirrors the 'car_expenses' table.
type CarExpenseModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	CarID       uuid.UUID `gorm:"type:uuid;not null;index:idx_car_expenses_car_date"`
	Amount      float64   `gorm:"type:numeric(12,2);not null"`
	Category    string    `gorm:"type:varchar(20);not null"`
	ExpenseDate time.Time `gorm:"not null;index:idx_car_expenses_car_date"`
	Description string    `gorm:"type:text"`
	ReceiptURL  string    `gorm:"type:text"`
	CreatedAt   time.Time
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName explicitly sets the table name for GORM.
func (CarExpenseModel) TableName() string {
	return "car_expenses"
}
