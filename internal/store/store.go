// Package store persists the CRM workspace as a single JSON snapshot.
package store

import (
	"context"
	"fmt"

	"github.com/autobrand/crm-cli/internal/model"
)

// Store defines the persistence interface for the workspace document.
// Writes are always full snapshots; there is no incremental path.
type Store interface {
	// Load reads the workspace, seeding the default service catalog on
	// first use or when the services collection is empty.
	Load(ctx context.Context) (*model.Workspace, error)
	// Save writes the whole workspace. Failed writes are retried once and
	// then surfaced as a *PersistenceError.
	Save(ctx context.Context, ws *model.Workspace) error

	Migrate(ctx context.Context) error
	Close() error
}

// PersistenceError wraps a failed snapshot write. Callers are expected to
// abort the operation and leave the previously persisted state in place.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
