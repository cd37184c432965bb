package docinfo

import (
	"fmt"

	"github.com/ankit-chaubey/pdf-metadata-surgery/core"
)

// Apply merges an edit request into a mapping, producing a new mapping.
// The original is never mutated. Requested keys absent from the
// original are inserted; a value that parses to blank removes the key.
// All edits parse before any apply, so a single malformed field rejects
// the whole request.
func Apply(orig *core.InfoDict, edits core.EditRequest) (*core.InfoDict, error) {
	type change struct {
		key   string
		raw   string
		clear bool
	}

	changes := make([]change, 0, len(edits))
	for _, k := range edits.SortedKeys() {
		key := core.NormalizeKey(k)
		cur, exists := orig.Get(key)
		if exists && !cur.Editable {
			return nil, fmt.Errorf("field %s does not hold a text value and cannot be edited", key)
		}
		raw, err := RawValue(key, edits[k], IsDateKey(key) || (exists && cur.IsDate))
		if err != nil {
			return nil, err
		}
		changes = append(changes, change{key: key, raw: raw, clear: raw == ""})
	}

	out := orig.Clone()
	for _, c := range changes {
		if c.clear {
			out.Delete(c.key)
			continue
		}
		out.Set(newField(c.key, c.raw))
	}
	return out, nil
}
