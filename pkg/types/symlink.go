package types

import (
	"path/filepath"
	"sort"
)

// Symlink is a single managed link: the path where the link lives and the
// path it must point to. Both are absolute once resolved.
type Symlink struct {
	Link   string
	Target string
}

// DesiredState maps each Link to the Target it must point to. It is built
// fresh from the configuration on every run.
type DesiredState map[string]string

// NewDesiredState builds a DesiredState from resolved symlinks, cleaning
// both sides so that equal paths compare equal.
func NewDesiredState(symlinks []Symlink) DesiredState {
	d := make(DesiredState, len(symlinks))
	for _, s := range symlinks {
		d[filepath.Clean(s.Link)] = filepath.Clean(s.Target)
	}
	return d
}

// Links returns the links in sorted order.
func (d DesiredState) Links() []string {
	return sortedKeys(d)
}

// Symlinks returns the entries sorted by link.
func (d DesiredState) Symlinks() []Symlink {
	links := d.Links()
	out := make([]Symlink, len(links))
	for i, l := range links {
		out[i] = Symlink{Link: l, Target: d[l]}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
