package entity

import (
	"time"

	"github.com/google/uuid"
)

// CarDriverAssignment is a time-bounded link between a car and a driver
// record. At most one assignment per car may be open (UnassignedAt nil) at
// any time; assigning a new driver closes the previous assignment.
type CarDriverAssignment struct {
	ID           uuid.UUID  `json:"id"`
	CarID        uuid.UUID  `json:"carId"`
	DriverID     uuid.UUID  `json:"driverId"` // References drivers.id, not the profile.
	AssignedAt   time.Time  `json:"assignedAt"`
	UnassignedAt *time.Time `json:"unassignedAt,omitempty"` // Nil while the assignment is active.
}

// Active reports whether the assignment is still open.
func (a *CarDriverAssignment) Active() bool {
	return a.UnassignedAt == nil
}

// CarManagerAssignment links a car to a manager record. Unlike drivers, a car
// may have several concurrently active manager assignments.
type CarManagerAssignment struct {
	ID           uuid.UUID  `json:"id"`
	CarID        uuid.UUID  `json:"carId"`
	ManagerID    uuid.UUID  `json:"managerId"` // References managers.id, not the profile.
	AssignedAt   time.Time  `json:"assignedAt"`
	UnassignedAt *time.Time `json:"unassignedAt,omitempty"`
}
