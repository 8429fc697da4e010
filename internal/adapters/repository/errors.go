package repository

import "errors"

// Sentinel kinds for snapshot errors.
var (
	ErrSnapshotMissing = errors.New("ratings snapshot not found")
	ErrSnapshotCorrupt = errors.New("ratings snapshot corrupt")
)
