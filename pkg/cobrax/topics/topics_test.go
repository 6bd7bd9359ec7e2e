package topics

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource() fstest.MapFS {
	return fstest.MapFS{
		"dry-run.txt":        {Data: []byte("Information about dry-run mode")},
		"nested/lockfile.md": {Data: []byte("# Lock file\n\nWhat it records")},
		"option-force.md":    {Data: []byte("# --force\n")},
		"config.txxt":        {Data: []byte("Configuration Guide")},
		"ignore.json":        {Data: []byte("{}")},
	}
}

func TestTopicManager_Load(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(testSource())
		require.NoError(t, tm.Load())

		tests := []struct {
			name     string
			expected bool
			content  string
		}{
			{"dry-run", true, "Information about dry-run mode"},
			{"lockfile", true, "# Lock file\n\nWhat it records"},
			{"config", false, ""},
			{"ignore", false, ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				topic, exists := tm.GetTopic(tt.name)
				assert.Equal(t, tt.expected, exists)
				if exists {
					assert.Equal(t, tt.content, topic.Content)
				}
			})
		}
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(testSource(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.Load())
		assert.Equal(t, []string{"config"}, tm.ListTopics())
	})

	t.Run("nil source", func(t *testing.T) {
		tm := New(nil)
		require.NoError(t, tm.Load())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestTopicManager_GetTopicFlagStyle(t *testing.T) {
	tm := New(testSource())
	require.NoError(t, tm.Load())

	for _, name := range []string{"--force", "-force", "force", "option-force"} {
		_, ok := tm.GetTopic(name)
		assert.True(t, ok, name)
	}
}

type upperRenderer struct{}

func (upperRenderer) Render(_ io.Writer, content, ext string) string {
	return strings.ToUpper(content) + ext
}

func TestTopicManager_Render(t *testing.T) {
	tm := NewWithOptions(testSource(), Options{Renderer: upperRenderer{}})
	require.NoError(t, tm.Load())

	out, ok := tm.Render(io.Discard, "dry-run")
	require.True(t, ok)
	assert.Equal(t, "INFORMATION ABOUT DRY-RUN MODE.txt", out)

	_, ok = tm.Render(io.Discard, "nope")
	assert.False(t, ok)
}

func TestPrintList(t *testing.T) {
	tm := New(testSource())
	require.NoError(t, tm.Load())

	var buf bytes.Buffer
	tm.PrintList(&buf, "symkeeper")
	out := buf.String()
	assert.Contains(t, out, "General topics:\n  dry-run\n  lockfile\n")
	assert.Contains(t, out, "Option topics:\n  --force\n")
	assert.Contains(t, out, "Use 'symkeeper help <topic>'")

	buf.Reset()
	New(nil).PrintList(&buf, "symkeeper")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

func TestInitialize(t *testing.T) {
	root := &cobra.Command{Use: "app", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "sync", Short: "Sync links", Run: func(*cobra.Command, []string) {}})

	_, err := Initialize(root, testSource())
	require.NoError(t, err)

	run := func(args ...string) string {
		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetErr(&buf)
		root.SetArgs(args)
		require.NoError(t, root.Execute())
		return buf.String()
	}

	assert.Contains(t, run("help", "topics"), "Available help topics:")
	assert.Equal(t, "Information about dry-run mode\n", run("help", "dry-run"))
	assert.Contains(t, run("help", "sync"), "Sync links")
}

func TestPlainRenderer(t *testing.T) {
	r := PlainRenderer{}
	assert.Equal(t, "body\n", r.Render(io.Discard, "body", ".txt"))
	assert.Equal(t, "body\n", r.Render(io.Discard, "body\n", ".txt"))
	assert.Equal(t, "", r.Render(io.Discard, "", ".txt"))
}

func TestGlamourRenderer(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain text\n", r.Render(io.Discard, "plain text", ".txt"))

	// a buffer is never a terminal, so the notty style is used
	var buf bytes.Buffer
	out := r.Render(&buf, "# Title\n\nThe `symlinks` table.", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "symlinks")
}
