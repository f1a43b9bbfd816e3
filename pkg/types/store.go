package types

import "time"

// SnapshotMeta describes one persisted Frame.
type SnapshotMeta struct {
	SnapshotID string    // UUID v7, generated on save.
	Template   string    // The naming template the frame was built from.
	Columns    []string  // Column order at save time (path first).
	RowCount   int       // Number of persisted rows.
	CreatedAt  time.Time // Timestamp of the save.
}

// Store persists Frames as named snapshots for later reload and
// filtering. Attach before use; Detach releases resources. Saving is an
// explicit, caller-driven operation: discovery never consults the store.
// Implements: prd003-snapshot-store R2.
type Store interface {
	// Attach connects the store to the backend described by config,
	// creating the DataDir if needed. Returns ErrAlreadyAttached if
	// called while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, operations return ErrStoreDetached.
	Detach() error

	// Save persists the frame under a fresh UUID v7 snapshot ID and
	// returns the ID.
	Save(template string, f *Frame) (string, error)

	// Get reloads a snapshot by ID or unique ID prefix. Row order,
	// column order, and field value types round-trip.
	// Returns ErrNotFound for unknown IDs.
	Get(id string) (SnapshotMeta, *Frame, error)

	// List returns metadata for all snapshots, newest first.
	List() ([]SnapshotMeta, error)

	// Delete removes a snapshot (by ID or unique ID prefix) and its rows.
	// Returns ErrNotFound for unknown IDs.
	Delete(id string) error
}
