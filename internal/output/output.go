// Package output formats what the CLI prints: cfg atoms on stdout,
// warnings and errors on stderr, and help text.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Writer handles CLI output formatting.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
	quiet bool
}

// New creates a Writer on the process streams. Colors are enabled when
// stdout is a terminal and NO_COLOR is unset.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: isTerminal() && os.Getenv("NO_COLOR") == "",
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{out: out, err: err, color: color}
}

// SetQuiet suppresses section headers. Atoms, warnings and errors are
// still printed.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...any) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...any) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Warning prints a warning message to stderr.
func (w *Writer) Warning(format string, args ...any) {
	w.Errorln("%s", w.paint(yellow, "warning: "+fmt.Sprintf(format, args...)))
}

// ErrorPrefix prints an error message prefixed with the program name to stderr.
func (w *Writer) ErrorPrefix(format string, args ...any) {
	w.Errorln("%s %s", w.paint(red, "rustcfg:"), fmt.Sprintf(format, args...))
}

// Section prints a per-target header (skipped in quiet mode).
func (w *Writer) Section(title string) {
	if w.quiet {
		return
	}
	w.Println("%s", w.paint(bold, "=== "+title+" ==="))
}

// Table prints left-aligned columns separated by two spaces, with a dashed
// rule under the headers. Cells beyond the header count are dropped.
func (w *Writer) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, 0, len(widths))
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			parts = append(parts, cell+strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	rule := make([]string, len(widths))
	for i, width := range widths {
		rule[i] = strings.Repeat("-", width)
	}

	w.Println("%s", line(headers))
	w.Println("%s", strings.Join(rule, "  "))
	for _, row := range rows {
		w.Println("%s", line(row))
	}
}

// SummaryItem prints a labeled value.
func (w *Writer) SummaryItem(label, value string) {
	w.Println("  %s %s", w.paint(dim, label+":"), value)
}

// ValidationSuccess prints a validation success message.
func (w *Writer) ValidationSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		msg = green + "✓" + reset + " " + msg
	}
	w.Println("%s", msg)
}

// paint wraps text in an ANSI style when colors are enabled.
func (w *Writer) paint(style, text string) string {
	if !w.color {
		return text
	}
	return style + text + reset
}

// isTerminal returns true if stdout is a terminal.
func isTerminal() bool {
	if fi, _ := os.Stdout.Stat(); fi != nil {
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)
