// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Authentication represents a stored login credential: the email identifier
// and the bcrypt hash of the account password.
type Authentication struct {
	ID           uuid.UUID // The unique ID of this credential record.
	UserID       uuid.UUID // Links the credential to the Profile it belongs to.
	Email        string    // The login email, unique across credentials.
	PasswordHash string    // The bcrypt-hashed password.
	CreatedAt    time.Time // Timestamp of when the credential was created.
}

// RefreshToken represents a long-lived, authorized device session. It is used
// to obtain a new access token after the old one expires.
type RefreshToken struct {
	ID        uuid.UUID // The unique ID of this token record.
	UserID    uuid.UUID // Links the session to the Profile it belongs to.
	TokenHash string    // SHA-256 hash of the raw refresh token.
	ExpiresAt time.Time // When this session becomes invalid.
	CreatedAt time.Time // When the session was opened (i.e., when the user logged in).
}

// Session is the client-facing view of an authenticated device session.
// Exactly one Session is active per device at a time.
type Session struct {
	UserID       uuid.UUID `json:"userId"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}
