// Package repository persists rating indexes as snapshot files.
package repository

import (
	"context"

	"github.com/okian/ladder/internal/domain/model"
)

// Store reads and writes whole snapshots. There is no partial update: Save
// replaces the snapshot, Load returns a fresh copy the caller owns.
type Store interface {
	// Save writes ix to path, creating parent directories as needed.
	Save(ctx context.Context, path string, ix model.Index) error

	// Load reads the snapshot at path.
	// Returns ErrSnapshotMissing if nothing has been built there yet.
	Load(ctx context.Context, path string) (model.Index, error)
}
