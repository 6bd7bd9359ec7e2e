package types

import (
	"fmt"
	"strings"
)

// CurrentStateVersion is the lock file schema version written by this build.
const CurrentStateVersion = 1

// PersistedState is the record of the last successful run: the links the
// tool owns and the links it still has to remove. Ownership is decided from
// this record only, never by inspecting the filesystem.
type PersistedState struct {
	Version int

	// Managed maps each link the tool created to the target it wrote.
	Managed map[string]string

	// PendingRemoval holds links that left the configuration and have not
	// been removed yet. Disjoint from Managed.
	PendingRemoval map[string]struct{}
}

// NewPersistedState returns an empty state at the current version.
func NewPersistedState() *PersistedState {
	return &PersistedState{
		Version:        CurrentStateVersion,
		Managed:        make(map[string]string),
		PendingRemoval: make(map[string]struct{}),
	}
}

// OrEmpty returns s, or an empty state when s is nil. A missing lock file
// means "no prior run" and must behave exactly like an empty record.
func (s *PersistedState) OrEmpty() *PersistedState {
	if s == nil {
		return NewPersistedState()
	}
	return s
}

// IsManaged reports whether link is owned, and the target recorded for it.
func (s *PersistedState) IsManaged(link string) (string, bool) {
	if s == nil {
		return "", false
	}
	target, ok := s.Managed[link]
	return target, ok
}

// IsPendingRemoval reports whether link is queued for removal.
func (s *PersistedState) IsPendingRemoval(link string) bool {
	if s == nil {
		return false
	}
	_, ok := s.PendingRemoval[link]
	return ok
}

// ManagedLinks returns the owned links in sorted order.
func (s *PersistedState) ManagedLinks() []string {
	if s == nil {
		return nil
	}
	return sortedKeys(s.Managed)
}

// PendingLinks returns the queued links in sorted order.
func (s *PersistedState) PendingLinks() []string {
	if s == nil {
		return nil
	}
	return sortedKeys(s.PendingRemoval)
}

// Clone returns a deep copy.
func (s *PersistedState) Clone() *PersistedState {
	c := NewPersistedState()
	if s == nil {
		return c
	}
	c.Version = s.Version
	for k, v := range s.Managed {
		c.Managed[k] = v
	}
	for k := range s.PendingRemoval {
		c.PendingRemoval[k] = struct{}{}
	}
	return c
}

// Validate checks that no link is both managed and queued for removal.
func (s *PersistedState) Validate() error {
	if s == nil {
		return nil
	}
	var both []string
	for _, link := range s.PendingLinks() {
		if _, ok := s.Managed[link]; ok {
			both = append(both, link)
		}
	}
	if len(both) > 0 {
		return fmt.Errorf("links both managed and pending removal: %s", strings.Join(both, ", "))
	}
	return nil
}
