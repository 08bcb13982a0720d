// Package store holds the client-facing entity caches. Each store wraps one
// usecase, keeps a reconciled in-memory view with a loading/error pair, and
// persists a whitelisted snapshot of its state across restarts.
//
// Every mutating action follows the same protocol: the error is cleared and
// loading set at the start, the usecase call runs, the cache is reconciled on
// success, and on failure the cache is left untouched and the error is both
// recorded and returned to the caller.
package store

import (
	"context"
	"encoding/json"

	"drivelink/internal/domain/service"

	"github.com/pkg/errors"
)

// errNoSession is returned by session-dependent actions when logged out.
var errNoSession = errors.New("no active session")

// snapshotSchemaVersion tags every persisted snapshot. Snapshots written by a
// different version are discarded on hydrate rather than migrated.
const snapshotSchemaVersion = 1

// snapshotEnvelope wraps a store's whitelisted state for persistence.
type snapshotEnvelope struct {
	SchemaVersion int             `json:"schemaVersion"`
	State         json.RawMessage `json:"state"`
}

// loadSnapshot reads and unwraps a namespace's snapshot into state. It reports
// whether usable state was restored; a missing or version-mismatched snapshot
// is not an error.
func loadSnapshot(ctx context.Context, snapshots service.SnapshotStore, namespace string, state any) (bool, error) {
	data, err := snapshots.Load(ctx, namespace)
	if err != nil {
		if errors.Is(err, service.ErrSnapshotNotFound) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to load snapshot")
	}

	var envelope snapshotEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		// A corrupt snapshot is discarded, same as a stale one.
		_ = snapshots.Delete(ctx, namespace)

		return false, nil
	}
	if envelope.SchemaVersion != snapshotSchemaVersion {
		_ = snapshots.Delete(ctx, namespace)

		return false, nil
	}

	if err := json.Unmarshal(envelope.State, state); err != nil {
		_ = snapshots.Delete(ctx, namespace)

		return false, nil
	}

	return true, nil
}

// encodeSnapshot wraps state in a versioned envelope. Marshaling walks the
// state's maps and slices, so callers sharing that state with concurrent
// writers must hold at least a read lock across the call.
func encodeSnapshot(state any) ([]byte, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal snapshot state")
	}

	data, err := json.Marshal(snapshotEnvelope{
		SchemaVersion: snapshotSchemaVersion,
		State:         raw,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal snapshot envelope")
	}

	return data, nil
}

// saveSnapshot encodes state and persists it. Only for callers that own the
// state exclusively; the stores encode under their own lock instead.
func saveSnapshot(ctx context.Context, snapshots service.SnapshotStore, namespace string, state any) error {
	data, err := encodeSnapshot(state)
	if err != nil {
		return err
	}

	return errors.Wrap(snapshots.Save(ctx, namespace, data), "failed to save snapshot")
}
