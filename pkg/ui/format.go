package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how the Printer writes events.
type Format int

const (
	// FormatAuto picks FormatTerminal or FormatText from the output writer.
	FormatAuto Format = iota
	// FormatTerminal uses the lipgloss styles.
	FormatTerminal
	// FormatText writes the same lines without styling.
	FormatText
	// FormatJSON writes one JSON object per event.
	FormatJSON
)

var formatNames = [...]string{
	FormatAuto:     "auto",
	FormatTerminal: "term",
	FormatText:     "text",
	FormatJSON:     "json",
}

// aliases accepted on the command line and in settings, besides the names
var formatAliases = map[string]Format{
	"":         FormatAuto,
	"terminal": FormatTerminal,
	"plain":    FormatText,
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// ParseFormat reads a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(s)
	for f, name := range formatNames {
		if name == s {
			return Format(f), nil
		}
	}
	if f, ok := formatAliases[s]; ok {
		return f, nil
	}
	return FormatAuto, fmt.Errorf("unknown format: %s", s)
}

// Resolve turns FormatAuto into the concrete format for w. Styling is only
// used on a colour-capable terminal and never when NO_COLOR is set; buffers
// and pipes wrapped by callers get plain text.
func Resolve(format Format, w io.Writer) Format {
	if format != FormatAuto {
		return format
	}
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	file, ok := w.(*os.File)
	if !ok || !(isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())) {
		return FormatText
	}
	if termenv.NewOutput(file).Profile == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
