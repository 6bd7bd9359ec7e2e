package symkeeper

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/symkeeper/pkg/errors"
	"github.com/arthur-debert/symkeeper/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliEnv struct {
	home string
	dots string
	cfg  string
}

func setupCLI(t *testing.T) *cliEnv {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	t.Setenv("SYMKEEPER_STATE_DIR", filepath.Join(root, "state"))
	t.Setenv("SYMKEEPER_CONFIG_DIR", filepath.Join(root, "user-config"))
	t.Setenv("NO_COLOR", "1")

	e := &cliEnv{
		home: filepath.Join(root, "home"),
		dots: filepath.Join(root, "dots"),
		cfg:  filepath.Join(root, "dots", "symkeeper.toml"),
	}
	require.NoError(t, os.MkdirAll(e.home, 0755))
	require.NoError(t, os.MkdirAll(e.dots, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(e.dots, "vimrc"), []byte("set nu"), 0644))
	t.Setenv("SK_CLI_HOME", e.home)

	require.NoError(t, os.WriteFile(e.cfg, []byte(`[symlinks]
"$SK_CLI_HOME/.vimrc" = "vimrc"
`), 0644))
	return e
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSyncCommand(t *testing.T) {
	e := setupCLI(t)
	link := filepath.Join(e.home, ".vimrc")
	target := filepath.Join(e.dots, "vimrc")

	out, err := execute(t, "sync", "-c", e.cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Creating symlink from "+link+" to "+target)
	assert.Contains(t, out, "Writing "+filepath.Join(e.dots, "symkeeper.lock"))

	got, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	out, err = execute(t, "sync", "--config", e.cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Up to date: "+link)
	assert.Contains(t, out, MsgUpToDate)
	assert.NotContains(t, out, "Creating")
}

func TestSyncCommand_DryRun(t *testing.T) {
	e := setupCLI(t)

	out, err := execute(t, "sync", "--dry-run", "-c", e.cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Would create symlink from "+filepath.Join(e.home, ".vimrc"))
	assert.Contains(t, out, "DRY RUN MODE")

	_, err = os.Lstat(filepath.Join(e.home, ".vimrc"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(e.dots, "symkeeper.lock"))
	assert.True(t, os.IsNotExist(err))
}

func TestSyncCommand_ConflictNeedsForce(t *testing.T) {
	e := setupCLI(t)
	link := filepath.Join(e.home, ".vimrc")
	require.NoError(t, os.WriteFile(link, []byte("mine"), 0644))

	_, err := execute(t, "sync", "-c", e.cfg)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLinkConflict))
	assert.Contains(t, err.Error(), "use --force to overwrite:\n- "+link)

	out, err := execute(t, "sync", "-f", "-c", e.cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Removing existing file/symlink at "+link)
}

func TestSyncCommand_MissingTarget(t *testing.T) {
	e := setupCLI(t)
	require.NoError(t, os.Remove(filepath.Join(e.dots, "vimrc")))

	_, err := execute(t, "sync", "-c", e.cfg)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingTargets))
}

func TestSyncCommand_WatchKeepsRunningAfterFailedSync(t *testing.T) {
	e := setupCLI(t)
	require.NoError(t, os.Remove(filepath.Join(e.dots, "vimrc")))

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"sync", "--watch", "-c", e.cfg})

	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Contains(t, stderr.String(), "MISSING_TARGETS")
	assert.Contains(t, stdout.String(), "Watching "+e.cfg)
}

func TestSyncCommand_JSON(t *testing.T) {
	e := setupCLI(t)

	out, err := execute(t, "sync", "--format", "json", "-c", e.cfg)
	require.NoError(t, err)

	var kinds []ui.EventKind
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var ev ui.Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev), scanner.Text())
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []ui.EventKind{ui.EventCreateSymlink, ui.EventWriteFile}, kinds)
}

func TestSyncCommand_MissingConfig(t *testing.T) {
	e := setupCLI(t)

	_, err := execute(t, "sync", "-c", filepath.Join(e.dots, "absent.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestStatusCommand(t *testing.T) {
	e := setupCLI(t)

	out, err := execute(t, "status", "-c", e.cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "unrecorded")

	_, err = execute(t, "sync", "-c", e.cfg)
	require.NoError(t, err)

	out, err = execute(t, "status", "-c", e.cfg)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(e.home, ".vimrc"))
	assert.Contains(t, out, "ok")
}

func TestCleanCommand(t *testing.T) {
	e := setupCLI(t)

	out, err := execute(t, "clean", "-c", e.cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "No lock file found, nothing to clean")

	_, err = execute(t, "sync", "-c", e.cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(e.cfg, []byte("[symlinks]\n"), 0644))

	out, err = execute(t, "sync", "-c", e.cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Queued for removal: "+filepath.Join(e.home, ".vimrc"))
	assert.Contains(t, out, "Removing existing file/symlink at "+filepath.Join(e.home, ".vimrc"))
	assert.FileExists(t, filepath.Join(e.dots, "vimrc"))
}

func TestTopicsAndHelp(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "lockfile")
	assert.Contains(t, out, "--force")

	out, err = execute(t, "help", "lockfile")
	require.NoError(t, err)
	assert.Contains(t, out, "symlinks_to_remove")

	out, err = execute(t, "help", "option-force")
	require.NoError(t, err)
	assert.Contains(t, out, "-c/--config")
}

func TestCompletionCommand(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "symkeeper")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "symkeeper version dev")
}

func TestRootWithoutCommand(t *testing.T) {
	setupCLI(t)

	out, err := execute(t)
	require.Error(t, err)
	assert.Contains(t, out, "USAGE:")
	assert.Contains(t, out, "sync")
}

func TestInvalidFormatFlag(t *testing.T) {
	e := setupCLI(t)

	_, err := execute(t, "sync", "--format", "xml", "-c", e.cfg)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}
