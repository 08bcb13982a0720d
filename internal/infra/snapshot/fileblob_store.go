// Package snapshot implements the on-device snapshot store backing the entity
// caches, using a gocloud.dev blob bucket over the local filesystem.
package snapshot

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"

	"drivelink/config"
	"drivelink/internal/domain/service"
	"drivelink/internal/errors"
)

const defaultSnapshotDir = "./data/snapshots"

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// blobSnapshotStore persists each namespace as one JSON object in the bucket.
type blobSnapshotStore struct {
	bucket *blob.Bucket
}

// New opens the fileblob bucket at the configured path and returns the store.
func New(params Params) (service.SnapshotStore, error) {
	dir := defaultSnapshotDir
	if params.Config.Storage != nil && params.Config.Storage.Path != "" {
		dir = params.Config.Storage.Path
	}

	bucket, err := fileblob.OpenBucket(dir, &fileblob.Options{CreateDir: true})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open snapshot bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("snapshot store ready", slog.String("path", dir))

	return &blobSnapshotStore{bucket: bucket}, nil
}

// NewWithBucket wraps an already-open bucket. Used by tests and by callers
// that manage the bucket lifecycle themselves.
func NewWithBucket(bucket *blob.Bucket) service.SnapshotStore {
	return &blobSnapshotStore{bucket: bucket}
}

// Save writes the snapshot bytes for a namespace, replacing any previous value.
func (s *blobSnapshotStore) Save(ctx context.Context, namespace string, data []byte) error {
	if err := s.bucket.WriteAll(ctx, snapshotKey(namespace), data, nil); err != nil {
		return errors.Wrapf(err, "save snapshot %s", namespace)
	}

	return nil
}

// Load reads the snapshot bytes for a namespace.
func (s *blobSnapshotStore) Load(ctx context.Context, namespace string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, snapshotKey(namespace))
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, service.ErrSnapshotNotFound
		}

		return nil, errors.Wrapf(err, "load snapshot %s", namespace)
	}

	return data, nil
}

// Delete removes the snapshot for a namespace. Missing snapshots are not an error.
func (s *blobSnapshotStore) Delete(ctx context.Context, namespace string) error {
	if err := s.bucket.Delete(ctx, snapshotKey(namespace)); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "delete snapshot %s", namespace)
	}

	return nil
}

func snapshotKey(namespace string) string {
	return namespace + ".json"
}
