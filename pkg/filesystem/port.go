package filesystem

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/arthur-debert/symkeeper/pkg/errors"
	"github.com/arthur-debert/symkeeper/pkg/types"
)

// Port is the narrow set of filesystem operations the reconciliation
// engine and the cleaner rely on.
type Port interface {
	// Exists reports whether path resolves to something, following symlinks.
	Exists(path string) (bool, error)

	// Occupied reports whether anything at all sits at path, including a
	// dangling symlink.
	Occupied(path string) (bool, error)

	// Remove deletes path recursively. It does not follow a symlink at path.
	Remove(path string) error

	// CreateParentDirs makes sure every directory above link exists.
	CreateParentDirs(link string) error

	// CreateSymlink creates link pointing at target.
	CreateSymlink(target, link string) error

	// ReadSymlinkTarget returns where link points. isLink is false, with no
	// error, when link exists but is not a symlink or does not exist.
	ReadSymlinkTarget(link string) (target string, isLink bool, err error)
}

type port struct {
	fs types.FS
}

// NewPort builds a Port on top of fs. Pass a dry-run filesystem to get a
// port that reports instead of mutating.
func NewPort(fs types.FS) Port {
	return &port{fs: fs}
}

func (p *port) Exists(path string) (bool, error) {
	return exists(p.fs.Stat, path)
}

func (p *port) Occupied(path string) (bool, error) {
	return exists(p.fs.Lstat, path)
}

func exists(stat func(string) (fs.FileInfo, error), path string) (bool, error) {
	_, err := stat(path)
	if err == nil {
		return true, nil
	}
	if absent(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, errors.ErrLinkInspect, "failed to inspect %s", path).
		WithDetail("path", path)
}

func (p *port) Remove(path string) error {
	if err := p.fs.RemoveAll(path); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove existing file/symlink at %s", path).
			WithDetail("path", path)
	}
	return nil
}

func (p *port) CreateParentDirs(link string) error {
	parent := filepath.Dir(link)
	if info, err := p.fs.Stat(parent); err == nil && info.IsDir() {
		return nil
	}
	if err := p.fs.MkdirAll(parent, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent directory at %s", parent).
			WithDetail("path", parent)
	}
	return nil
}

func (p *port) CreateSymlink(target, link string) error {
	if err := p.fs.Symlink(target, link); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to create symlink from %s to %s", link, target).
			WithDetail("link", link).
			WithDetail("target", target)
	}
	return nil
}

func (p *port) ReadSymlinkTarget(link string) (string, bool, error) {
	info, err := p.fs.Lstat(link)
	if err != nil {
		if absent(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, errors.ErrLinkInspect, "failed to inspect symlink at %s", link).
			WithDetail("path", link)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return "", false, nil
	}
	target, err := p.fs.Readlink(link)
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrLinkInspect, "failed to inspect symlink at %s", link).
			WithDetail("path", link)
	}
	return target, true, nil
}

// absent reports whether a stat error means nothing can be at the path. A
// path running through a regular file fails with ENOTDIR and is absent too.
func absent(err error) bool {
	return os.IsNotExist(err) || stderrors.Is(err, syscall.ENOTDIR)
}
