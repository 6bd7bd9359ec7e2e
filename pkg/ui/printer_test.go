package ui_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/arthur-debert/symkeeper/pkg/types"
	"github.com/arthur-debert/symkeeper/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		ev   ui.Event
		want string
	}{
		{
			name: "remove",
			ev:   ui.Event{Kind: ui.EventRemove, Path: "/h/.vimrc"},
			want: "Removing existing file/symlink at /h/.vimrc",
		},
		{
			name: "remove dry run",
			ev:   ui.Event{Kind: ui.EventRemove, Path: "/h/.vimrc", DryRun: true},
			want: "Would remove /h/.vimrc",
		},
		{
			name: "create dir",
			ev:   ui.Event{Kind: ui.EventCreateDir, Path: "/h/.config"},
			want: "Creating parent directory at /h/.config",
		},
		{
			name: "create symlink dry run",
			ev:   ui.Event{Kind: ui.EventCreateSymlink, Path: "/h/.vimrc", Target: "/d/vimrc", DryRun: true},
			want: "Would create symlink from /h/.vimrc to /d/vimrc",
		},
		{
			name: "create symlink",
			ev:   ui.Event{Kind: ui.EventCreateSymlink, Path: "/h/.vimrc", Target: "/d/vimrc"},
			want: "Creating symlink from /h/.vimrc to /d/vimrc",
		},
		{
			name: "skip",
			ev:   ui.Event{Kind: ui.EventSkip, Path: "/h/.vimrc", Target: "/d/vimrc"},
			want: "Up to date: /h/.vimrc -> /d/vimrc",
		},
		{
			name: "queue",
			ev:   ui.Event{Kind: ui.EventQueue, Path: "/h/.old"},
			want: "Queued for removal: /h/.old",
		},
		{
			name: "notice",
			ev:   ui.Event{Kind: ui.EventNotice, Message: "No lock file found, nothing to clean"},
			want: "No lock file found, nothing to clean",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ui.Describe(tt.ev))
		})
	}
}

func TestPrinter_Text(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, ui.FormatText)

	p.Report(ui.Event{Kind: ui.EventRemove, Path: "/a"})
	p.Notice("done")

	assert.Equal(t, "Removing existing file/symlink at /a\ndone\n", buf.String())
}

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, ui.FormatJSON)

	p.Report(ui.Event{Kind: ui.EventCreateSymlink, Path: "/a", Target: "/t", DryRun: true})
	p.DryRunBanner()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var ev ui.Event
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &ev))
	assert.Equal(t, ui.EventCreateSymlink, ev.Kind)
	assert.Equal(t, "/t", ev.Target)
	assert.True(t, ev.DryRun)
}

func TestPrinter_Status(t *testing.T) {
	rows := []types.LinkStatus{
		{Link: "/h/.bashrc", Target: "/d/bashrc", State: types.LinkOK},
		{Link: "/h/.old", State: types.LinkPendingRemoval},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		ui.NewPrinter(&buf, ui.FormatText).Status(rows)

		out := buf.String()
		assert.Contains(t, out, "/h/.bashrc  ok")
		assert.Contains(t, out, "/d/bashrc")
		assert.Contains(t, out, "pending-removal")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		ui.NewPrinter(&buf, ui.FormatJSON).Status(rows)

		var got []types.LinkStatus
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, rows, got)
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		ui.NewPrinter(&buf, ui.FormatText).Status(nil)
		assert.Equal(t, "No symlinks recorded.\n", buf.String())
	})
}

func TestRecorderAndMulti(t *testing.T) {
	a, b := &ui.Recorder{}, &ui.Recorder{}
	m := ui.Multi{a, b, ui.Discard{}}

	m.Report(ui.Event{Kind: ui.EventSkip})
	m.Report(ui.Event{Kind: ui.EventQueue})

	assert.Equal(t, []ui.EventKind{ui.EventSkip, ui.EventQueue}, a.Kinds())
	assert.Equal(t, a.Events, b.Events)
}
