package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// OwnerRecord is the thin join row linking a Profile to the owner role table.
// Cars reference owners through this record, not through the profile directly.
type OwnerRecord struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ManagerRecord is the thin join row linking a Profile to the manager role table.
type ManagerRecord struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// DriverRecord is the thin join row linking a Profile to the driver role table.
// Drivers additionally carry their last reported position for the tracking tab.
type DriverRecord struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	Geolocation *orb.Point `json:"geolocation,omitempty"` // Last reported lon/lat; nil when never reported.
	LocatedAt   *time.Time `json:"locatedAt,omitempty"`   // When the position was reported.
	CreatedAt   time.Time  `json:"createdAt"`
}

// User is the merged read model of a Profile and its Role, the shape screens
// list people in.
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber"`
	Avatar      string    `json:"avatar"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}
