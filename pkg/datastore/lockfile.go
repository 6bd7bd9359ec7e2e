package datastore

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/arthur-debert/symkeeper/pkg/errors"
	"github.com/arthur-debert/symkeeper/pkg/logging"
	"github.com/arthur-debert/symkeeper/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// lockFile is the on-disk shape of the record.
type lockFile struct {
	Version          int               `toml:"version"`
	SymlinksToRemove []string          `toml:"symlinks_to_remove"`
	Symlinks         map[string]string `toml:"symlinks"`
}

type lockFileStore struct {
	fs   types.FS
	path string
}

// New creates a Store backed by the lock file at path.
func New(fs types.FS, path string) Store {
	return &lockFileStore{fs: fs, path: path}
}

func (s *lockFileStore) Path() string {
	return s.path
}

func (s *lockFileStore) Load() (*types.PersistedState, error) {
	logger := logging.GetLogger("datastore").With().Str("path", s.path).Logger()

	if _, err := s.fs.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Msg("No lock file, starting from an empty record")
			return nil, nil
		}
		return nil, s.loadError(err)
	}

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return nil, s.loadError(err)
	}

	var lf lockFile
	if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&lf); err != nil {
		return nil, s.loadError(err)
	}

	state, err := fromLockFile(lf)
	if err != nil {
		return nil, s.loadError(err)
	}

	logger.Debug().
		Int("managed", len(state.Managed)).
		Int("pending", len(state.PendingRemoval)).
		Msg("Lock file loaded")
	return state, nil
}

func (s *lockFileStore) loadError(err error) error {
	return errors.Wrapf(err, errors.ErrStateLoad,
		"failed to load lock file, remove %q and run `sync` to regenerate it", s.path).
		WithDetail("path", s.path)
}

func (s *lockFileStore) Save(state *types.PersistedState) error {
	if state == nil {
		return errors.New(errors.ErrInternal, "refusing to save a nil state")
	}
	if err := state.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrStateSave, "refusing to save an inconsistent state")
	}

	data, err := toml.Marshal(toLockFile(state))
	if err != nil {
		return errors.Wrap(err, errors.ErrStateSave, "failed to encode lock file")
	}
	if err := s.fs.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrStateSave, "failed to write lock file %s", s.path).
			WithDetail("path", s.path)
	}

	logger := logging.GetLogger("datastore")
	logger.Debug().
		Str("path", s.path).
		Int("managed", len(state.Managed)).
		Int("pending", len(state.PendingRemoval)).
		Msg("Lock file saved")
	return nil
}

func toLockFile(state *types.PersistedState) lockFile {
	lf := lockFile{
		Version:          types.CurrentStateVersion,
		Symlinks:         make(map[string]string, len(state.Managed)),
		SymlinksToRemove: state.PendingLinks(),
	}
	if lf.SymlinksToRemove == nil {
		lf.SymlinksToRemove = []string{}
	}
	for link, target := range state.Managed {
		lf.Symlinks[link] = target
	}
	return lf
}

func fromLockFile(lf lockFile) (*types.PersistedState, error) {
	// files written before the version field existed are version 1
	if lf.Version == 0 {
		lf.Version = 1
	}
	if lf.Version > types.CurrentStateVersion {
		return nil, errors.Newf(errors.ErrStateLoad,
			"lock file version %d is newer than supported version %d", lf.Version, types.CurrentStateVersion)
	}

	state := types.NewPersistedState()
	state.Version = lf.Version
	for link, target := range lf.Symlinks {
		state.Managed[filepath.Clean(link)] = filepath.Clean(target)
	}
	for _, link := range lf.SymlinksToRemove {
		state.PendingRemoval[filepath.Clean(link)] = struct{}{}
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}
	return state, nil
}
