// Package storage keeps gate snapshots (entry and exit images) in an
// S3-compatible object store.
package storage

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// SnapshotPrefix is the key prefix of every gate snapshot. Retention rules are
// scoped to it.
const SnapshotPrefix = "gate/"

// PutObjectOptions describe an upload. Size is the exact byte count, or -1 when
// unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
	Metadata    map[string]string
}

// Storage is the snapshot store used by the gate service.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	Delete(ctx context.Context, key string) error
}

// SnapshotKey names a new snapshot of the given kind ("entry" or "exit") taken at
// at, partitioned by day so a gate's images for one date list together.
func SnapshotKey(kind string, at time.Time, ext string) string {
	return SnapshotPrefix + kind + "/" + at.Format("2006/01/02") + "/" + uuid.NewString() + ext
}
