package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/symkeeper/pkg/types"
	"github.com/arthur-debert/symkeeper/pkg/ui/output/styles"
	"github.com/charmbracelet/lipgloss"
)

// Printer is the Reporter used by the CLI. It writes one line per event in
// the configured format.
type Printer struct {
	w      io.Writer
	format Format
	enc    *json.Encoder
}

// NewPrinter creates a printer writing to w. FormatAuto is resolved against w.
func NewPrinter(w io.Writer, format Format) *Printer {
	p := &Printer{w: w, format: Resolve(format, w)}
	if p.format == FormatJSON {
		p.enc = json.NewEncoder(w)
	}
	return p
}

// Format returns the concrete format in use.
func (p *Printer) Format() Format {
	return p.format
}

// Report implements Reporter.
func (p *Printer) Report(ev Event) {
	switch p.format {
	case FormatJSON:
		_ = p.enc.Encode(ev)
	case FormatTerminal:
		fmt.Fprintln(p.w, p.styled(ev))
	default:
		fmt.Fprintln(p.w, Describe(ev))
	}
}

// Notice reports a free-form message.
func (p *Printer) Notice(msg string) {
	p.Report(Event{Kind: EventNotice, Message: msg})
}

// DryRunBanner tells the user nothing was changed. JSON output carries the
// dry_run flag on every event instead.
func (p *Printer) DryRunBanner() {
	const banner = "DRY RUN MODE - No changes were made"
	switch p.format {
	case FormatJSON:
	case FormatTerminal:
		fmt.Fprintln(p.w, styles.GetStyle("DryRunBanner").Render(banner))
	default:
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, banner)
	}
}

// Describe returns the plain-text line for an event.
func Describe(ev Event) string {
	if ev.DryRun {
		switch ev.Kind {
		case EventRemove:
			return fmt.Sprintf("Would remove %s", ev.Path)
		case EventCreateDir:
			return fmt.Sprintf("Would create directory %s", ev.Path)
		case EventCreateSymlink:
			return fmt.Sprintf("Would create symlink from %s to %s", ev.Path, ev.Target)
		case EventWriteFile:
			return fmt.Sprintf("Would write %s", ev.Path)
		}
	}
	switch ev.Kind {
	case EventRemove:
		return fmt.Sprintf("Removing existing file/symlink at %s", ev.Path)
	case EventCreateDir:
		return fmt.Sprintf("Creating parent directory at %s", ev.Path)
	case EventCreateSymlink:
		return fmt.Sprintf("Creating symlink from %s to %s", ev.Path, ev.Target)
	case EventWriteFile:
		return fmt.Sprintf("Writing %s", ev.Path)
	case EventSkip:
		return fmt.Sprintf("Up to date: %s -> %s", ev.Path, ev.Target)
	case EventQueue:
		return fmt.Sprintf("Queued for removal: %s", ev.Path)
	default:
		return ev.Message
	}
}

func (p *Printer) styled(ev Event) string {
	line := Describe(ev)
	switch ev.Kind {
	case EventSkip:
		return styles.GetStyle("Muted").Render("· " + line)
	case EventQueue:
		return styles.GetStyle("Queued").Render("… " + line)
	case EventNotice:
		return styles.GetStyle("Info").Render(line)
	}
	glyph := styles.GetStyle("Success").Render("✓")
	if ev.DryRun {
		glyph = styles.GetStyle("Warning").Render("~")
	}
	return glyph + " " + line
}

// Status renders the status table.
func (p *Printer) Status(rows []types.LinkStatus) {
	if p.format == FormatJSON {
		_ = p.enc.Encode(rows)
		return
	}
	if len(rows) == 0 {
		fmt.Fprintln(p.w, "No symlinks recorded.")
		return
	}

	width := 0
	for _, r := range rows {
		if len(r.Link) > width {
			width = len(r.Link)
		}
	}

	for _, r := range rows {
		// pad before styling so escape codes do not skew the columns
		state := fmt.Sprintf("%-15s", r.State)
		if p.format == FormatTerminal {
			state = stateStyle(r.State).Render(state)
		}
		line := fmt.Sprintf("%-*s  %s  %s", width, r.Link, state, r.Target)
		fmt.Fprintln(p.w, strings.TrimRight(line, " "))
	}
}

func stateStyle(s types.LinkState) lipgloss.Style {
	switch s {
	case types.LinkOK:
		return styles.GetStyle("Success")
	case types.LinkDrifted, types.LinkMissing:
		return styles.GetStyle("Error")
	case types.LinkPendingRemoval:
		return styles.GetStyle("Queued")
	default:
		return styles.GetStyle("Warning")
	}
}
