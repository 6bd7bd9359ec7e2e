// Package config loads symkeeper's two kinds of configuration.
//
// Link configuration (symkeeper.toml) is the declarative list of symlinks:
//
//	[symlinks]
//	"~/.vimrc" = "vim/vimrc"
//	"${XDG_CONFIG_HOME:-~/.config}/nvim" = "nvim"
//
// It is decoded strictly with go-toml: unknown top-level keys and duplicate
// links are load errors.
//
// Tool settings tune symkeeper itself and are layered with koanf, lowest
// precedence first:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user settings file ($XDG_CONFIG_HOME/symkeeper/settings.toml)
//  3. SYMKEEPER_* environment variables
//  4. command line flags
package config
