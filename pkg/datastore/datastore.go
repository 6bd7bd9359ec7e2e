package datastore

import "github.com/arthur-debert/symkeeper/pkg/types"

// Store loads and saves the persisted state.
type Store interface {
	// Path returns the lock file location.
	Path() string

	// Load returns the recorded state, or nil with no error when there is
	// no lock file yet.
	Load() (*types.PersistedState, error)

	// Save replaces the recorded state.
	Save(state *types.PersistedState) error
}
