package filesystem

import (
	"io/fs"

	"github.com/arthur-debert/symkeeper/pkg/types"
	"github.com/arthur-debert/symkeeper/pkg/ui"
)

// reportingFS announces every mutation to a Reporter, then performs it.
type reportingFS struct {
	types.FS
	reporter ui.Reporter
}

// NewReportingFS wraps inner so that each mutation is reported before it
// runs. Reads pass straight through.
func NewReportingFS(inner types.FS, reporter ui.Reporter) types.FS {
	return &reportingFS{FS: inner, reporter: reporter}
}

func (r *reportingFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	r.reporter.Report(ui.Event{Kind: ui.EventWriteFile, Path: name})
	return r.FS.WriteFile(name, data, perm)
}

func (r *reportingFS) MkdirAll(path string, perm fs.FileMode) error {
	r.reporter.Report(ui.Event{Kind: ui.EventCreateDir, Path: path})
	return r.FS.MkdirAll(path, perm)
}

func (r *reportingFS) Symlink(oldname, newname string) error {
	r.reporter.Report(ui.Event{Kind: ui.EventCreateSymlink, Path: newname, Target: oldname})
	return r.FS.Symlink(oldname, newname)
}

func (r *reportingFS) Remove(name string) error {
	r.reporter.Report(ui.Event{Kind: ui.EventRemove, Path: name})
	return r.FS.Remove(name)
}

func (r *reportingFS) RemoveAll(path string) error {
	r.reporter.Report(ui.Event{Kind: ui.EventRemove, Path: path})
	return r.FS.RemoveAll(path)
}
