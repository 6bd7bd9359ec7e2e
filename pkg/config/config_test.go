package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/symkeeper/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := writeFile(t, dir, "ok.toml", `
[symlinks]
"~/.vimrc" = "vim/vimrc"
"$HOME/.zshrc" = "/abs/zshrc"
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"~/.vimrc":     "vim/vimrc",
			"$HOME/.zshrc": "/abs/zshrc",
		}, cfg.Symlinks)
	})

	t.Run("empty file means no links", func(t *testing.T) {
		path := writeFile(t, dir, "empty.toml", "")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.NotNil(t, cfg.Symlinks)
		assert.Empty(t, cfg.Symlinks)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.toml"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("duplicate link is rejected", func(t *testing.T) {
		path := writeFile(t, dir, "dup.toml", `
[symlinks]
"~/.a" = "x"
"~/.a" = "y"
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
		assert.Contains(t, err.Error(), path)
	})

	t.Run("unknown top-level key is rejected", func(t *testing.T) {
		path := writeFile(t, dir, "unknown.toml", `
[links]
"~/.a" = "x"
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("non-string target is rejected", func(t *testing.T) {
		path := writeFile(t, dir, "type.toml", `
[symlinks]
"~/.a" = 42
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("syntax error", func(t *testing.T) {
		path := writeFile(t, dir, "syntax.toml", "[symlinks\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
		assert.Contains(t, err.Error(), "line 1")
	})
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty target", "[symlinks]\n\"~/.a\" = \"\"\n", "target must not be empty"},
		{"blank target", "[symlinks]\n\"~/.a\" = \"  \"\n", "target must not be empty"},
		{"empty link", "[symlinks]\n\"\" = \"x\"\n", "link must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		vars, err := LoadEnvFile(filepath.Join(dir, ".env"))
		require.NoError(t, err)
		assert.Empty(t, vars)
	})

	t.Run("empty path", func(t *testing.T) {
		vars, err := LoadEnvFile("")
		require.NoError(t, err)
		assert.Nil(t, vars)
	})

	t.Run("reads variables", func(t *testing.T) {
		path := writeFile(t, dir, ".env", "DOTFILES=/srv/dotfiles\n# comment\nQUOTED=\"a b\"\n")
		vars, err := LoadEnvFile(path)
		require.NoError(t, err)
		assert.Equal(t, "/srv/dotfiles", vars["DOTFILES"])
		assert.Equal(t, "a b", vars["QUOTED"])
	})
}
