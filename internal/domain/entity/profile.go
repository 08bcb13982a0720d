// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the core identity record of a DriveLink account. Its ID doubles
// as the user ID: every role table and assignment row ultimately points here.
type Profile struct {
	ID          uuid.UUID // The unique identifier of the account; shared with the auth identity.
	Email       string    // The login identifier and primary contact address.
	FullName    string    // The user's display name.
	PhoneNumber string    // Optional contact number; empty when not provided.
	Avatar      string    // Optional avatar URL; empty when not provided.
	CreatedAt   time.Time // Timestamp of account creation.
	UpdatedAt   time.Time // Timestamp of the last profile mutation.
}

// ProfilePatch carries the mutable subset of a Profile for updates.
// Nil fields are left untouched.
type ProfilePatch struct {
	FullName    *string
	PhoneNumber *string
	Avatar      *string
}
