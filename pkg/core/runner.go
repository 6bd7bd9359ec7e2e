package core

import (
	"context"
	"path/filepath"
	"reflect"

	"github.com/arthur-debert/symkeeper/pkg/config"
	"github.com/arthur-debert/symkeeper/pkg/datastore"
	"github.com/arthur-debert/symkeeper/pkg/filesystem"
	"github.com/arthur-debert/symkeeper/pkg/logging"
	"github.com/arthur-debert/symkeeper/pkg/paths"
	"github.com/arthur-debert/symkeeper/pkg/types"
	"github.com/arthur-debert/symkeeper/pkg/ui"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NoLockFileMessage is reported by a standalone clean without a record.
const NoLockFileMessage = "No lock file found, nothing to clean"

// RunnerOptions configures a Runner
type RunnerOptions struct {
	// ConfigPath is the absolute path of the link configuration.
	ConfigPath string

	// LockExtension names the lock file next to ConfigPath.
	LockExtension string

	// EnvFile is a dotenv file, relative to the configuration directory
	// unless absolute. Empty disables it.
	EnvFile string

	Force  bool
	DryRun bool

	// FS is the underlying filesystem. Defaults to the OS.
	FS types.FS

	// Reporter receives one event per action. Defaults to ui.Discard.
	Reporter ui.Reporter
}

// Runner orchestrates complete runs: load, reconcile, persist, clean,
// persist.
type Runner struct {
	opts   RunnerOptions
	fs     types.FS
	port   filesystem.Port
	store  datastore.Store
	logger zerolog.Logger
}

// SyncResult summarizes a sync run.
type SyncResult struct {
	RunID    string
	Plan     *types.ActionPlan
	State    *types.PersistedState
	Removed  []string
	LockPath string
}

// NewRunner wires the filesystem strategy, port and store for opts.
func NewRunner(opts RunnerOptions) *Runner {
	if opts.Reporter == nil {
		opts.Reporter = ui.Discard{}
	}
	logger := logging.GetLogger("core.runner")
	opts.Reporter = ui.Multi{opts.Reporter, eventLogger{logger}}

	base := opts.FS
	if base == nil {
		base = filesystem.NewOS()
	}

	var fs types.FS
	if opts.DryRun {
		fs = filesystem.NewDryRunFS(base, opts.Reporter)
	} else {
		fs = filesystem.NewReportingFS(base, opts.Reporter)
	}

	return &Runner{
		opts:   opts,
		fs:     fs,
		port:   filesystem.NewPort(fs),
		store:  datastore.New(fs, paths.LockFilePath(opts.ConfigPath, opts.LockExtension)),
		logger: logger,
	}
}

// eventLogger copies every reported event into the debug log.
type eventLogger struct {
	logger zerolog.Logger
}

func (l eventLogger) Report(ev ui.Event) {
	l.logger.Debug().
		Str("kind", string(ev.Kind)).
		Str("path", ev.Path).
		Str("target", ev.Target).
		Bool("dryRun", ev.DryRun).
		Msg("Event")
}

// LockPath returns the lock file this runner reads and writes.
func (r *Runner) LockPath() string {
	return r.store.Path()
}

// Desired loads the configuration and resolves it into the desired state.
func (r *Runner) Desired() (types.DesiredState, error) {
	cfg, err := config.Load(r.opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(r.opts.ConfigPath)
	var dotenv map[string]string
	if r.opts.EnvFile != "" {
		envPath := r.opts.EnvFile
		if !filepath.IsAbs(envPath) {
			envPath = filepath.Join(baseDir, envPath)
		}
		dotenv, err = config.LoadEnvFile(envPath)
		if err != nil {
			return nil, err
		}
	}

	symlinks, err := paths.NewResolver(baseDir, dotenv).ResolveAll(cfg.Symlinks)
	if err != nil {
		return nil, err
	}
	return types.NewDesiredState(symlinks), nil
}

// Sync runs a full reconciliation followed by a clean pass. The record is
// written only after each phase fully succeeds, and only when it changed.
func (r *Runner) Sync(ctx context.Context) (*SyncResult, error) {
	runID := uuid.NewString()
	logger := r.logger.With().Str("run_id", runID).Bool("dry_run", r.opts.DryRun).Logger()
	done := logging.LogOperationStart(logger, "sync")
	defer done()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	desired, err := r.Desired()
	if err != nil {
		return nil, err
	}
	previous, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("config", r.opts.ConfigPath).
		Int("desired", len(desired)).
		Bool("first_run", previous == nil).
		Msg("Starting sync")

	res, err := Reconcile(r.port, desired, previous, r.opts.Force)
	if err != nil {
		return nil, err
	}
	for _, a := range res.Plan.Actions {
		if a.Kind == types.ActionSkip {
			r.report(ui.Event{Kind: ui.EventSkip, Path: a.Link, Target: a.Target})
		}
	}
	for _, link := range res.Plan.Queued {
		r.report(ui.Event{Kind: ui.EventQueue, Path: link})
	}
	if err := r.save(previous, res.State); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned, err := Clean(r.port, res.State)
	if err != nil {
		return nil, err
	}
	if err := r.save(res.State, cleaned.State); err != nil {
		return nil, err
	}

	logger.Info().
		Int("mutations", res.Plan.Mutations()).
		Int("removed", len(cleaned.Removed)).
		Msg("Sync finished")
	return &SyncResult{
		RunID:    runID,
		Plan:     res.Plan,
		State:    cleaned.State,
		Removed:  cleaned.Removed,
		LockPath: r.store.Path(),
	}, nil
}

// Clean runs a standalone clean pass against the recorded state.
func (r *Runner) Clean(ctx context.Context) (*CleanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	previous, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	if previous == nil {
		r.logger.Info().Str("lock", r.store.Path()).Msg("No lock file")
		r.opts.Reporter.Report(ui.Event{Kind: ui.EventNotice, Message: NoLockFileMessage})
		return &CleanResult{}, nil
	}

	cleaned, err := Clean(r.port, previous)
	if err != nil {
		return nil, err
	}
	if err := r.save(previous, cleaned.State); err != nil {
		return nil, err
	}
	return cleaned, nil
}

// Status reports recorded and configured links. A missing configuration
// still shows the record.
func (r *Runner) Status(ctx context.Context) ([]types.LinkStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	previous, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	desired, err := r.Desired()
	if err != nil {
		if previous == nil {
			return nil, err
		}
		r.logger.Warn().Err(err).Msg("Could not load configuration, showing recorded links only")
		desired = nil
	}
	return Status(r.port, desired, previous)
}

func (r *Runner) save(before, after *types.PersistedState) error {
	if sameState(before, after) {
		r.logger.Debug().Msg("Record unchanged, not writing lock file")
		return nil
	}
	return r.store.Save(after)
}

func (r *Runner) report(ev ui.Event) {
	ev.DryRun = r.opts.DryRun
	r.opts.Reporter.Report(ev)
}

func sameState(a, b *types.PersistedState) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Version == b.Version &&
		reflect.DeepEqual(a.Managed, b.Managed) &&
		reflect.DeepEqual(a.PendingRemoval, b.PendingRemoval)
}
