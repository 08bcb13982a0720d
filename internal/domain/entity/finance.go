package entity

import (
	"time"

	"github.com/google/uuid"
)

// RevenueSource classifies where a revenue entry came from.
type RevenueSource string

const (
	// RevenueSourceRide is income from passenger rides.
	RevenueSourceRide RevenueSource = "ride"
	// RevenueSourceDelivery is income from deliveries.
	RevenueSourceDelivery RevenueSource = "delivery"
	// RevenueSourceOther is any other income.
	RevenueSourceOther RevenueSource = "other"
)

// IsValid checks if the RevenueSource is a valid value.
func (s RevenueSource) IsValid() bool {
	switch s {
	case RevenueSourceRide, RevenueSourceDelivery, RevenueSourceOther:
		return true
	default:
		return false
	}
}

// ExpenseCategory classifies a cost entry.
type ExpenseCategory string

const (
	ExpenseCategoryFuel        ExpenseCategory = "fuel"
	ExpenseCategoryMaintenance ExpenseCategory = "maintenance"
	ExpenseCategoryInsurance   ExpenseCategory = "insurance"
	ExpenseCategoryRepair      ExpenseCategory = "repair"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

// IsValid checks if the ExpenseCategory is a valid value.
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryFuel, ExpenseCategoryMaintenance, ExpenseCategoryInsurance,
		ExpenseCategoryRepair, ExpenseCategoryOther:
		return true
	default:
		return false
	}
}

// CarRevenue is an income entry logged against a single car. Entries are
// append-mostly: updates are rare and deletes are corrections.
type CarRevenue struct {
	ID          uuid.UUID     `json:"id"`
	CarID       uuid.UUID     `json:"carId"`
	Amount      float64       `json:"amount"` // Currency amount with 2-decimal semantics.
	Source      RevenueSource `json:"source"`
	RevenueDate time.Time     `json:"revenueDate"`
	Notes       string        `json:"notes"`  // Optional free text.
	TripID      string        `json:"tripId"` // Optional external trip reference.
	CreatedAt   time.Time     `json:"createdAt"`
	CreatedBy   uuid.UUID     `json:"createdBy"`
}

// CarExpense is a cost entry logged against a single car.
type CarExpense struct {
	ID          uuid.UUID       `json:"id"`
	CarID       uuid.UUID       `json:"carId"`
	Amount      float64         `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	ExpenseDate time.Time       `json:"expenseDate"`
	Description string          `json:"description"` // Optional free text.
	ReceiptURL  string          `json:"receiptUrl"`  // Optional receipt image URL.
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   uuid.UUID       `json:"createdBy"`
}

// RevenuePatch carries the mutable subset of a CarRevenue for updates.
// Nil fields are left untouched.
type RevenuePatch struct {
	Amount      *float64
	Source      *RevenueSource
	RevenueDate *time.Time
	Notes       *string
	TripID      *string
}

// ExpensePatch carries the mutable subset of a CarExpense for updates.
type ExpensePatch struct {
	Amount      *float64
	Category    *ExpenseCategory
	ExpenseDate *time.Time
	Description *string
	ReceiptURL  *string
}

// ProfitLoss is the derived financial summary for one car over a date range.
type ProfitLoss struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalExpenses float64 `json:"totalExpenses"`
	Profit        float64 `json:"profit"`
	ProfitMargin  float64 `json:"profitMargin"` // Percentage; zero when revenue is zero.
}

// NewProfitLoss derives profit and margin from the two aggregate sums.
func NewProfitLoss(totalRevenue, totalExpenses float64) ProfitLoss {
	pl := ProfitLoss{
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		Profit:        totalRevenue - totalExpenses,
	}
	if totalRevenue > 0 {
		pl.ProfitMargin = pl.Profit / totalRevenue * 100
	}

	return pl
}
