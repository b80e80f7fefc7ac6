package output

import (
	"fmt"
	"regexp"
)

var placeholderRe = regexp.MustCompile(`<[^>]*>`)

// HelpTitle prints the first line of a help page.
func (w *Writer) HelpTitle(title string) {
	w.Println("%s", w.paint(bold+cyan, title))
}

// HelpSection prints a blank line and a section header such as "Options:".
func (w *Writer) HelpSection(title string) {
	w.Println("")
	w.Println("%s", w.paint(bold+yellow, title))
}

// HelpFlag prints a command or flag padded to width, then its description.
func (w *Writer) HelpFlag(name, description string, width int) {
	w.Println("  %s  %s", w.paint(yellow, fmt.Sprintf("%-*s", width, name)), w.paint(dim, description))
}

// HelpEnvVar prints an environment variable row; it is laid out like a flag.
func (w *Writer) HelpEnvVar(name, description string, width int) {
	w.HelpFlag(name, description, width)
}

// HelpUsage prints a usage line, highlighting <placeholders>.
func (w *Writer) HelpUsage(usage string) {
	w.Println("  %s", w.colorPlaceholders(usage))
}

// HelpExample prints an example command with an optional description.
func (w *Writer) HelpExample(command, description string) {
	w.Println("  %s", w.paint(cyan, command))
	if description != "" {
		w.Println("      %s", w.paint(dim, description))
	}
}

// colorPlaceholders highlights <placeholder> patterns in text.
func (w *Writer) colorPlaceholders(text string) string {
	if !w.color {
		return text
	}
	return placeholderRe.ReplaceAllStringFunc(text, func(p string) string {
		return w.paint(green, p)
	})
}
