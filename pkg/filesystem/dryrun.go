package filesystem

import (
	"io/fs"

	"github.com/arthur-debert/symkeeper/pkg/logging"
	"github.com/arthur-debert/symkeeper/pkg/types"
	"github.com/arthur-debert/symkeeper/pkg/ui"
)

// dryRunFS reads from the wrapped filesystem but never mutates it. Every
// mutation is reported as a dry-run event and reported as successful.
type dryRunFS struct {
	types.FS
	reporter ui.Reporter
}

// NewDryRunFS wraps inner so that reads see the real filesystem and writes
// only produce dry-run events.
func NewDryRunFS(inner types.FS, reporter ui.Reporter) types.FS {
	return &dryRunFS{FS: inner, reporter: reporter}
}

func (d *dryRunFS) report(ev ui.Event) {
	ev.DryRun = true
	logger := logging.GetLogger("filesystem.dryrun")
	logger.Debug().
		Str("kind", string(ev.Kind)).
		Str("path", ev.Path).
		Msg("Skipping mutation in dry-run mode")
	d.reporter.Report(ev)
}

func (d *dryRunFS) WriteFile(name string, _ []byte, _ fs.FileMode) error {
	d.report(ui.Event{Kind: ui.EventWriteFile, Path: name})
	return nil
}

func (d *dryRunFS) MkdirAll(path string, _ fs.FileMode) error {
	d.report(ui.Event{Kind: ui.EventCreateDir, Path: path})
	return nil
}

func (d *dryRunFS) Symlink(oldname, newname string) error {
	d.report(ui.Event{Kind: ui.EventCreateSymlink, Path: newname, Target: oldname})
	return nil
}

func (d *dryRunFS) Remove(name string) error {
	d.report(ui.Event{Kind: ui.EventRemove, Path: name})
	return nil
}

func (d *dryRunFS) RemoveAll(path string) error {
	d.report(ui.Event{Kind: ui.EventRemove, Path: path})
	return nil
}
