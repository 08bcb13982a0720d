package service

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned when no snapshot exists under a namespace.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Store snapshot namespaces. Each entity store persists its whitelisted
// fields under exactly one of these keys.
const (
	SnapshotAuth    = "auth-storage"
	SnapshotCar     = "car-storage"
	SnapshotRevenue = "revenue-storage"
	SnapshotExpense = "expense-storage"
	SnapshotUser    = "user-storage"
)

// SnapshotStore persists store snapshots to on-device storage. Loading and
// saving are whole-value operations; partial updates are not supported.
type SnapshotStore interface {
	// Save writes the snapshot bytes for a namespace, replacing any previous value.
	Save(ctx context.Context, namespace string, data []byte) error

	// Load reads the snapshot bytes for a namespace.
	// Returns ErrSnapshotNotFound when nothing was ever saved.
	Load(ctx context.Context, namespace string) ([]byte, error)

	// Delete removes the snapshot for a namespace. Deleting a missing
	// snapshot is not an error.
	Delete(ctx context.Context, namespace string) error
}
