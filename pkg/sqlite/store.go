// Package sqlite provides the public API for the SQLite snapshot store.
// This package exposes the factory function while keeping implementation
// details internal.
//
// Implements: prd003-snapshot-store R2 (store factory);
//
//	docs/ARCHITECTURE § Public API.
package sqlite

import (
	"github.com/mesh-intelligence/hallmark/internal/sqlite"
	"github.com/mesh-intelligence/hallmark/pkg/types"
)

// NewStore creates a new SQLite snapshot store. The store is not
// attached; call Attach with a Config to initialize.
//
// Example:
//
//	store := sqlite.NewStore()
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".hallmark",
//	})
//	defer store.Detach()
func NewStore() types.Store {
	return sqlite.NewStore()
}
