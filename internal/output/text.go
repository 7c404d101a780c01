package output

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mv/qmlhook/internal/format"
)

// TextFormatter renders one report line per file, colored through the
// configured styles.
type TextFormatter struct {
	styles Styles
}

// NewTextFormatter creates a TextFormatter.
func NewTextFormatter(styles Styles) *TextFormatter {
	return &TextFormatter{styles: styles}
}

func (f *TextFormatter) Format(buf []byte, res format.Result, verbose bool) []byte {
	var label string
	var style lipgloss.Style
	switch res.Status {
	case format.StatusOK:
		if !verbose {
			return buf
		}
		label, style = "ok", f.styles.OK
	case format.StatusNeedsFormat:
		label, style = "needs formatting", f.styles.Warn
	case format.StatusChanged:
		label, style = "reformatted", f.styles.Warn
	case format.StatusError:
		label, style = "error", f.styles.Error
	}

	buf = append(buf, f.styles.File.Render(res.Path)...)
	buf = append(buf, f.styles.Separator.Render(":")...)
	buf = append(buf, ' ')
	buf = append(buf, style.Render(label)...)
	if res.Status == format.StatusError && res.Detail != "" {
		buf = append(buf, ": "...)
		buf = append(buf, res.Detail...)
	}
	buf = append(buf, '\n')
	return buf
}

func (f *TextFormatter) Summary(buf []byte, t Tally) []byte {
	parts := []string{plural(t.Total, "file") + " checked"}
	if t.Clean() {
		parts = append(parts, f.styles.OK.Render("all clean"))
	} else {
		if t.NeedsFormat == 1 {
			parts = append(parts, f.styles.Warn.Render("1 needs formatting"))
		} else if t.NeedsFormat > 1 {
			parts = append(parts, f.styles.Warn.Render(strconv.Itoa(t.NeedsFormat)+" need formatting"))
		}
		if t.Changed > 0 {
			parts = append(parts, f.styles.Warn.Render(strconv.Itoa(t.Changed)+" reformatted"))
		}
		if t.Errors > 0 {
			parts = append(parts, f.styles.Error.Render(plural(t.Errors, "error")))
		}
	}

	buf = append(buf, strings.Join(parts, ", ")...)
	buf = append(buf, '\n')
	return buf
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}

// Ensure TextFormatter implements Formatter.
var _ Formatter = (*TextFormatter)(nil)
