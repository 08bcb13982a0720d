package entity

import (
	"time"

	"github.com/google/uuid"
)

// CarStatus is the operational state of a fleet vehicle. Status transitions
// are free-form: any status may follow any other.
type CarStatus string

const (
	// CarStatusAvailable means the car is idle and can be assigned.
	CarStatusAvailable CarStatus = "available"
	// CarStatusActive means the car is currently on the road.
	CarStatusActive CarStatus = "active"
	// CarStatusMaintenance means the car is in the shop.
	CarStatusMaintenance CarStatus = "maintenance"
	// CarStatusInactive means the car is parked indefinitely.
	CarStatusInactive CarStatus = "inactive"
)

// AllCarStatuses lists every valid car status, in display order.
var AllCarStatuses = []CarStatus{
	CarStatusAvailable,
	CarStatusActive,
	CarStatusMaintenance,
	CarStatusInactive,
}

// String returns the string representation of the CarStatus.
func (s CarStatus) String() string {
	return string(s)
}

// IsValid checks if the CarStatus is a valid value.
func (s CarStatus) IsValid() bool {
	switch s {
	case CarStatusAvailable, CarStatusActive, CarStatusMaintenance, CarStatusInactive:
		return true
	default:
		return false
	}
}

// Car is a fleet vehicle. Each car is owned by exactly one owner record and
// may have at most one active driver assignment at a time.
type Car struct {
	ID        uuid.UUID `json:"id"`
	PlateNo   string    `json:"plateNo"`  // The registration plate, unique per fleet.
	LibreNo   string    `json:"libreNo"`  // The vehicle libre (title) or VIN number.
	OwnerID   uuid.UUID `json:"ownerId"`  // References the owner record, not the profile directly.
	Model     string    `json:"model"`    // Optional make/model.
	Year      int       `json:"year"`     // Optional model year; zero when unknown.
	Color     string    `json:"color"`    // Optional color.
	FuelType  string    `json:"fuelType"` // Optional fuel type.
	Status    CarStatus `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// CarPatch carries the mutable subset of a Car for updates. Nil fields are
// left untouched.
type CarPatch struct {
	PlateNo  *string
	LibreNo  *string
	Model    *string
	Year     *int
	Color    *string
	FuelType *string
	Status   *CarStatus
}
