package core_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/arthur-debert/symkeeper/pkg/errors"
	"github.com/arthur-debert/symkeeper/pkg/filesystem"
	"github.com/stretchr/testify/require"
)

// env is a throwaway home directory with a dotfiles tree and a
// configuration file.
type env struct {
	t    *testing.T
	root string
	home string
	dots string
	cfg  string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	root := t.TempDir()
	// macOS temp dirs live behind a symlink
	root, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)

	e := &env{
		t:    t,
		root: root,
		home: filepath.Join(root, "home"),
		dots: filepath.Join(root, "dots"),
		cfg:  filepath.Join(root, "dots", "symkeeper.toml"),
	}
	require.NoError(t, os.MkdirAll(e.home, 0755))
	require.NoError(t, os.MkdirAll(e.dots, 0755))
	t.Setenv("SK_TEST_HOME", e.home)
	return e
}

// target creates a file in the dotfiles tree and returns its path.
func (e *env) target(name string) string {
	e.t.Helper()
	path := filepath.Join(e.dots, name)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.t, os.WriteFile(path, []byte(name), 0644))
	return path
}

// writeConfig writes the [symlinks] table. Keys are relative to $SK_TEST_HOME,
// values relative to the dotfiles directory.
func (e *env) writeConfig(links map[string]string) {
	e.t.Helper()
	keys := make([]string, 0, len(links))
	for k := range links {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("[symlinks]\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%q = %q\n", "$SK_TEST_HOME/"+k, links[k])
	}
	require.NoError(e.t, os.WriteFile(e.cfg, []byte(b.String()), 0644))
}

func (e *env) link(name string) string {
	return filepath.Join(e.home, name)
}

func (e *env) lockPath() string {
	return filepath.Join(e.dots, "symkeeper.lock")
}

func (e *env) readlink(name string) string {
	e.t.Helper()
	got, err := os.Readlink(e.link(name))
	require.NoError(e.t, err)
	return got
}

func (e *env) exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// failingPort fails selected operations for selected paths and counts the
// mutations it let through.
type failingPort struct {
	filesystem.Port
	failRemove  map[string]bool
	failSymlink map[string]bool
	created     []string
}

func (p *failingPort) Remove(path string) error {
	if p.failRemove[path] {
		return errors.Newf(errors.ErrFileRemove, "failed to remove existing file/symlink at %s", path)
	}
	return p.Port.Remove(path)
}

func (p *failingPort) CreateSymlink(target, link string) error {
	if p.failSymlink[link] {
		return errors.Newf(errors.ErrSymlinkCreate, "failed to create symlink from %s to %s", link, target)
	}
	p.created = append(p.created, link)
	return p.Port.CreateSymlink(target, link)
}
