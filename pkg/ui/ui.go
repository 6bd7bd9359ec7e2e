// Package ui renders what symkeeper does: one event per filesystem action
// (or intended action, in dry-run mode), plus the status table. It supports
// terminal (rich), text (plain), and JSON output formats.
package ui

// EventKind identifies what happened to a path.
type EventKind string

const (
	EventRemove        EventKind = "remove"
	EventCreateDir     EventKind = "create_dir"
	EventCreateSymlink EventKind = "create_symlink"
	EventWriteFile     EventKind = "write_file"
	EventSkip          EventKind = "skip"
	EventQueue         EventKind = "queue_removal"
	EventNotice        EventKind = "notice"
)

// Event is a single reported action. DryRun events describe what would
// have happened; nothing was changed on disk.
type Event struct {
	Kind    EventKind `json:"kind"`
	Path    string    `json:"path,omitempty"`
	Target  string    `json:"target,omitempty"`
	Message string    `json:"message,omitempty"`
	DryRun  bool      `json:"dry_run,omitempty"`
}

// Reporter receives events as they happen.
type Reporter interface {
	Report(ev Event)
}

// Discard is a Reporter that drops every event.
type Discard struct{}

// Report implements Reporter.
func (Discard) Report(Event) {}

// Recorder keeps every event in order. Used by tests and by callers that
// want to inspect a run after the fact.
type Recorder struct {
	Events []Event
}

// Report implements Reporter.
func (r *Recorder) Report(ev Event) {
	r.Events = append(r.Events, ev)
}

// Kinds returns the kinds of the recorded events, in order.
func (r *Recorder) Kinds() []EventKind {
	kinds := make([]EventKind, len(r.Events))
	for i, ev := range r.Events {
		kinds[i] = ev.Kind
	}
	return kinds
}

// Multi fans events out to several reporters.
type Multi []Reporter

// Report implements Reporter.
func (m Multi) Report(ev Event) {
	for _, r := range m {
		r.Report(ev)
	}
}
