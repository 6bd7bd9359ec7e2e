// Package datastore persists symkeeper's record of the links it owns.
//
// The record lives in a TOML lock file next to the configuration
// (symkeeper.toml -> symkeeper.lock):
//
//	version = 1
//	symlinks_to_remove = ["/home/me/.old"]
//
//	[symlinks]
//	"/home/me/.vimrc" = "/home/me/dotfiles/vim/vimrc"
//
// All reads and writes go through types.FS, so a dry-run filesystem turns
// Save into a reported no-op.
package datastore
