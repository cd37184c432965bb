package docinfo

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ankit-chaubey/pdf-metadata-surgery/core"
)

// dateKeys are the information dictionary keys defined to hold PDF date
// strings. Custom keys qualify too when their value parses as one.
var dateKeys = map[string]bool{
	"/CreationDate": true,
	"/ModDate":      true,
}

// IsDateKey reports whether key is defined to hold a date.
func IsDateKey(key string) bool {
	return dateKeys[core.NormalizeKey(key)]
}

// IsDateValue reports whether the field identified by key and raw value
// should be treated as a date.
func IsDateValue(key, raw string) bool {
	return IsDateKey(key) || IsPDFDate(raw)
}

// DisplayValue converts a raw stored value into its human rendering.
// Dates are converted to Eastern civil time; everything else passes
// through with control characters stripped. A date value that does not
// parse is shown as plain text rather than hidden.
func DisplayValue(key, raw string) string {
	if IsDateValue(key, raw) {
		if t, err := ParsePDFDate(raw); err == nil {
			return FormatEastern(t)
		}
	}
	return sanitize(raw)
}

// RawValue converts an edited display value back into the raw form
// stored in the PDF. date marks the field as holding a PDF date
// string; a custom key whose stored value is a date parses back the
// same way the standard date keys do. A blank value yields "", meaning
// "clear this field". Malformed date input fails with
// *core.FieldFormatError; it is never coerced or truncated.
func RawValue(key, display string, date bool) (string, error) {
	key = core.NormalizeKey(key)
	if strings.TrimSpace(display) == "" {
		return "", nil
	}
	if !date {
		return display, nil
	}

	trimmed := strings.TrimSpace(display)
	if strings.HasPrefix(trimmed, "D:") {
		if _, err := ParsePDFDate(trimmed); err != nil {
			return "", &core.FieldFormatError{Key: key, Value: display, Want: DisplayPattern}
		}
		return trimmed, nil
	}
	t, err := ParseDisplay(trimmed)
	if err != nil {
		return "", &core.FieldFormatError{Key: key, Value: display, Want: DisplayPattern}
	}
	return PDFDateString(t), nil
}

// sanitize strips control characters and normalizes the value to NFC so
// combining sequences render consistently.
func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	return norm.NFC.String(s)
}
