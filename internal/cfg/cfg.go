// Package cfg provides the cfg atom type and the parser for `rustc --print cfg` output.
package cfg

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind distinguishes the two shapes of a cfg atom.
type Kind int

const (
	KindFlag Kind = iota
	KindKeyValue
)

// Atom is a single built-in cfg predicate, either a bare flag such as `unix`
// or a key/value pair such as `target_feature="sse2"`.
// Several atoms may share a key; callers keep them in the order rustc printed them.
type Atom struct {
	Kind  Kind
	Key   string
	Value string // empty for flags
}

// Flag creates a flag atom.
func Flag(name string) Atom {
	return Atom{Kind: KindFlag, Key: name}
}

// KeyValue creates a key/value atom.
func KeyValue(key, value string) Atom {
	return Atom{Kind: KindKeyValue, Key: key, Value: value}
}

// String renders the atom the way rustc prints it.
func (a Atom) String() string {
	if a.Kind == KindKeyValue {
		return a.Key + `="` + a.Value + `"`
	}
	return a.Key
}

// ParseError reports a line that is neither a flag nor a key/value pair.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid cfg %q: %s", e.Line, e.Reason)
}

// Parse parses one line of `--print cfg` output.
func Parse(line string) (Atom, error) {
	line = strings.TrimSuffix(line, "\r")

	key, value, ok := strings.Cut(line, "=")
	if !ok {
		if !isIdent(line) {
			return Atom{}, &ParseError{Line: line, Reason: "flag is not an identifier"}
		}
		return Flag(line), nil
	}

	if !isIdent(key) {
		return Atom{}, &ParseError{Line: line, Reason: "key is not an identifier"}
	}
	if len(value) < 2 || !strings.HasPrefix(value, `"`) || !strings.HasSuffix(value, `"`) {
		return Atom{}, &ParseError{Line: line, Reason: "value should be in quotes"}
	}
	return KeyValue(key, value[1:len(value)-1]), nil
}

// ParseLines parses every line of text. It is all-or-nothing: the first
// invalid line discards the whole batch.
func ParseLines(text string) ([]Atom, error) {
	lines := Lines(text)
	atoms := make([]Atom, 0, len(lines))
	for _, line := range lines {
		atom, err := Parse(line)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, atom)
	}
	return atoms, nil
}

// Lines splits text on '\n', dropping a trailing '\r' from each line and the
// empty remainder after a final newline.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// isIdent reports whether s looks like a Rust identifier.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
