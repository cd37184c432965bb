// Package core defines the shared types, errors, and upload checks
// for PDF Metadata Surgery.
package core

import (
	"sort"
	"strings"
)

// Field represents a single entry of a PDF document-information dictionary.
type Field struct {
	Key      string // Slash-prefixed dictionary key (e.g. "/Title")
	Raw      string // Value exactly as stored in the PDF
	Display  string // Human-readable rendering of Raw
	IsDate   bool   // Raw holds a PDF date string
	Editable bool   // Whether this field can be written back by surgery
}

// StandardFields lists the information dictionary keys defined by the
// PDF specification, in canonical display order. Keys outside this list
// are custom fields and sort after it.
var StandardFields = []string{
	"/Title", "/Author", "/Subject", "/Keywords",
	"/Creator", "/Producer", "/CreationDate", "/ModDate", "/Trapped",
}

// NormalizeKey returns the slash-prefixed form of an information
// dictionary key. Both "Title" and "/Title" refer to the same field.
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" || strings.HasPrefix(key, "/") {
		return key
	}
	return "/" + key
}

// InfoDict is an ordered document-information mapping. The zero value
// is not usable; construct with NewInfoDict.
type InfoDict struct {
	fields []Field
	index  map[string]int
}

// NewInfoDict returns an empty information mapping.
func NewInfoDict() *InfoDict {
	return &InfoDict{index: map[string]int{}}
}

// Len returns the number of fields.
func (d *InfoDict) Len() int { return len(d.fields) }

// Keys returns the field keys in display order.
func (d *InfoDict) Keys() []string {
	keys := make([]string, len(d.fields))
	for i, f := range d.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of the fields in display order.
func (d *InfoDict) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// Get returns the field stored under key, if present.
func (d *InfoDict) Get(key string) (Field, bool) {
	i, ok := d.index[NormalizeKey(key)]
	if !ok {
		return Field{}, false
	}
	return d.fields[i], true
}

// Set stores f, replacing any existing field with the same key and
// otherwise appending it.
func (d *InfoDict) Set(f Field) {
	f.Key = NormalizeKey(f.Key)
	if i, ok := d.index[f.Key]; ok {
		d.fields[i] = f
		return
	}
	d.index[f.Key] = len(d.fields)
	d.fields = append(d.fields, f)
}

// Delete removes the field stored under key, if present.
func (d *InfoDict) Delete(key string) {
	key = NormalizeKey(key)
	i, ok := d.index[key]
	if !ok {
		return
	}
	d.fields = append(d.fields[:i], d.fields[i+1:]...)
	delete(d.index, key)
	for k, j := range d.index {
		if j > i {
			d.index[k] = j - 1
		}
	}
}

// Clone returns an independent copy of the mapping.
func (d *InfoDict) Clone() *InfoDict {
	out := NewInfoDict()
	for _, f := range d.fields {
		out.Set(f)
	}
	return out
}

// EditRequest maps field keys to new display values. Keys absent from
// the request mean "no change"; a blank value means "clear this field".
type EditRequest map[string]string

// SortedKeys returns the request keys in deterministic order.
func (r EditRequest) SortedKeys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatHints maps standard field names to example input, shown next to
// edit prompts.
var formatHints = map[string]string{
	"/Title":        "e.g., My Document Title",
	"/Author":       "e.g., John Doe",
	"/Subject":      "e.g., Document subject or description",
	"/Keywords":     "e.g., keyword1, keyword2, keyword3",
	"/Creator":      "e.g., Microsoft Word",
	"/Producer":     "e.g., Adobe PDF Library",
	"/CreationDate": "e.g., 2024-03-15 12:00:00 EST",
	"/ModDate":      "e.g., 2024-03-15 12:00:00 EST",
}

// FormatHint returns an example value for the given field key.
func FormatHint(key string) string {
	if h, ok := formatHints[NormalizeKey(key)]; ok {
		return h
	}
	return "Enter new value for this field"
}
