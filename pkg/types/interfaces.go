package types

import (
	"io/fs"
)

// FS is the filesystem interface required for symkeeper operations.
// Every mutation the tool performs goes through it, which is what lets a
// dry-run implementation be swapped in without touching planning code.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error

	// Lstat does not follow symlinks. In-memory test filesystems without
	// symlink support may fall back to Stat.
	Lstat(name string) (fs.FileInfo, error)
}
