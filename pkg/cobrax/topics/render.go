package topics

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

// Renderer formats a topic body for the writer it is about to be printed to.
// ext is the topic file extension, including the dot.
type Renderer interface {
	Render(w io.Writer, content, ext string) string
}

// PlainRenderer prints topics as they are stored, ending with a newline.
type PlainRenderer struct{}

// Render implements Renderer
func (PlainRenderer) Render(_ io.Writer, content, _ string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}

// GlamourRenderer renders markdown topics with glamour. Other extensions are
// printed as plain text.
type GlamourRenderer struct {
	// Style forces a glamour standard style ("dark", "light", "notty").
	// Empty picks one from the writer: auto-detected on a terminal, notty
	// everywhere else.
	Style string
	// Width wraps rendered text, 0 keeps glamour's default.
	Width int
}

// NewGlamourRenderer returns a renderer wrapping at 80 columns
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Width: 80}
}

// Render implements Renderer
func (r *GlamourRenderer) Render(w io.Writer, content, ext string) string {
	if ext != ".md" {
		return PlainRenderer{}.Render(w, content, ext)
	}

	var options []glamour.TermRendererOption
	switch {
	case r.Style != "":
		options = append(options, glamour.WithStandardStyle(r.Style))
	case isTerminal(w):
		options = append(options, glamour.WithAutoStyle())
	default:
		options = append(options, glamour.WithStandardStyle("notty"))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return PlainRenderer{}.Render(w, content, ext)
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return PlainRenderer{}.Render(w, content, ext)
	}
	return rendered
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
