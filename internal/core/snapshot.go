package core

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNoSnapshot is returned by a SnapshotStore that holds nothing for the
// requested source.
var ErrNoSnapshot = errors.New("no snapshot")

// Snapshot is a stored copy of a CSV body that parsed successfully.
type Snapshot struct {
	ID        uuid.UUID
	Source    string
	FetchedAt time.Time
	RowCount  int
	Body      string
}

// SnapshotStore persists last-good CSV bodies so a load can fall back to
// them when the live source is unavailable.
type SnapshotStore interface {
	Save(ctx context.Context, snap Snapshot) error
	Latest(ctx context.Context, source string) (*Snapshot, error)
}
