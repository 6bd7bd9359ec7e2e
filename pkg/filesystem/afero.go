package filesystem

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/arthur-debert/symkeeper/pkg/types"
	"github.com/spf13/afero"
)

// maxLinkHops bounds how many emulated links Stat follows before giving up.
const maxLinkHops = 40

// aferoFS implements types.FS using afero
type aferoFS struct {
	fs afero.Fs

	mu    sync.RWMutex
	links map[string]string
}

// NewAferoFS creates a new afero filesystem implementation.
// Backends implementing afero.Linker (OsFs, BasePathFs over OsFs) get real
// symlinks. For the others, such as MemMapFs, links are kept in memory next
// to the backend: Lstat reports them with os.ModeSymlink, Readlink returns
// their target and Stat follows them.
func NewAferoFS(fs afero.Fs) types.FS {
	return &aferoFS{fs: fs, links: make(map[string]string)}
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	resolved, err := a.follow(name)
	if err != nil {
		return nil, err
	}
	return a.fs.Stat(resolved)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	resolved, err := a.follow(name)
	if err != nil {
		return nil, err
	}
	return afero.ReadFile(a.fs, resolved)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) Symlink(oldname, newname string) error {
	if linker, ok := a.fs.(afero.Linker); ok {
		err := linker.SymlinkIfPossible(oldname, newname)
		if !stderrors.Is(err, afero.ErrNoSymlink) {
			return err
		}
	}

	linkErr := func(err error) error {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: err}
	}
	if _, err := a.Lstat(newname); err == nil {
		return linkErr(fs.ErrExist)
	}
	parent, err := a.Stat(filepath.Dir(newname))
	if err != nil {
		return linkErr(fs.ErrNotExist)
	}
	if !parent.IsDir() {
		return linkErr(syscall.ENOTDIR)
	}

	a.mu.Lock()
	a.links[filepath.Clean(newname)] = oldname
	a.mu.Unlock()
	return nil
}

func (a *aferoFS) Readlink(name string) (string, error) {
	if target, ok := a.link(name); ok {
		return target, nil
	}
	if reader, ok := a.fs.(afero.LinkReader); ok {
		return reader.ReadlinkIfPossible(name)
	}
	return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrInvalid}
}

func (a *aferoFS) Remove(name string) error {
	if a.dropLink(name) {
		return nil
	}
	return a.fs.Remove(name)
}

func (a *aferoFS) RemoveAll(path string) error {
	if a.dropLink(path) {
		return nil
	}

	prefix := filepath.Clean(path) + string(filepath.Separator)
	a.mu.Lock()
	for link := range a.links {
		if strings.HasPrefix(link, prefix) {
			delete(a.links, link)
		}
	}
	a.mu.Unlock()
	return a.fs.RemoveAll(path)
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if target, ok := a.link(name); ok {
		return linkInfo{name: filepath.Base(name), target: target}, nil
	}
	if lstater, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(name)
		return info, err
	}
	return a.fs.Stat(name)
}

func (a *aferoFS) link(name string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	target, ok := a.links[filepath.Clean(name)]
	return target, ok
}

func (a *aferoFS) dropLink(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := filepath.Clean(name)
	if _, ok := a.links[key]; !ok {
		return false
	}
	delete(a.links, key)
	return true
}

// follow resolves emulated links at name until it reaches a backend path.
func (a *aferoFS) follow(name string) (string, error) {
	for i := 0; i < maxLinkHops; i++ {
		target, ok := a.link(name)
		if !ok {
			return name, nil
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(name), target)
		}
		name = target
	}
	return "", &fs.PathError{Op: "stat", Path: name, Err: syscall.ELOOP}
}

// linkInfo describes an emulated symlink.
type linkInfo struct {
	name   string
	target string
}

func (l linkInfo) Name() string       { return l.name }
func (l linkInfo) Size() int64        { return int64(len(l.target)) }
func (l linkInfo) Mode() fs.FileMode  { return os.ModeSymlink | 0777 }
func (l linkInfo) ModTime() time.Time { return time.Time{} }
func (l linkInfo) IsDir() bool        { return false }
func (l linkInfo) Sys() interface{}   { return nil }
