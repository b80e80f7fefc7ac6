package output

import (
	"encoding/json"
	"fmt"

	"github.com/AndreyAkinshin/rustcfg/internal/cfg"
)

// Format selects how cfg atoms are rendered.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatText, FormatJSON, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected text, json or table)", name)
	}
}

// AtomRecord is the JSON shape of one atom.
type AtomRecord struct {
	Key   string  `json:"key"`
	Value *string `json:"value,omitempty"`
}

// TargetAtoms is the JSON shape of one queried target.
type TargetAtoms struct {
	Target string       `json:"target"`
	Cfgs   []AtomRecord `json:"cfgs"`
}

// HostTarget labels a query without an explicit target.
const HostTarget = "host"

// Atoms renders the atoms of several targets in order. Text output is the
// same line format rustc prints, preceded by a section header per target
// when more than one target is shown.
func (w *Writer) Atoms(targets []string, atoms [][]cfg.Atom, format Format) error {
	switch format {
	case FormatJSON:
		records := make([]TargetAtoms, len(targets))
		for i, target := range targets {
			records[i] = TargetAtoms{Target: labelTarget(target), Cfgs: toRecords(atoms[i])}
		}
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)

	case FormatTable:
		var rows [][]string
		for i, target := range targets {
			for _, a := range atoms[i] {
				rows = append(rows, []string{labelTarget(target), a.Key, a.Value})
			}
		}
		w.Table([]string{"Target", "Key", "Value"}, rows)
		return nil

	default:
		for i, target := range targets {
			if len(targets) > 1 {
				w.Section(labelTarget(target))
			}
			for _, a := range atoms[i] {
				w.Println("%s", a.String())
			}
		}
		return nil
	}
}

func toRecords(atoms []cfg.Atom) []AtomRecord {
	records := make([]AtomRecord, 0, len(atoms))
	for _, a := range atoms {
		r := AtomRecord{Key: a.Key}
		if a.Kind == cfg.KindKeyValue {
			v := a.Value
			r.Value = &v
		}
		records = append(records, r)
	}
	return records
}

func labelTarget(target string) string {
	if target == "" {
		return HostTarget
	}
	return target
}
