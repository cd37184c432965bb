package docinfo

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// displayLayout is the civil format dates are rendered in.
const displayLayout = "2006-01-02 15:04:05 MST"

// DisplayPattern documents the input format accepted for date fields.
const DisplayPattern = "YYYY-MM-DD HH:mm:ss ZZZ (e.g. 2024-03-15 12:00:00 EST) or a PDF date string (D:YYYYMMDDHHmmSS)"

// Eastern is the civil time zone dates are displayed in. It is a
// variable so the rule table can be swapped in tests.
var Eastern = loadEastern()

func loadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// Hosts without a tz database get the standard offset only.
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

// ParsePDFDate parses a PDF date string of the form
// D:YYYYMMDDHHmmSSOHH'mm'. Everything after the year is optional; a
// missing offset means UTC, as does a "Z" indicator.
func ParsePDFDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "D:")

	digits := 0
	for digits < len(s) && digits < 14 && isDigit(s[digits]) {
		digits++
	}
	if digits < 4 || digits%2 != 0 {
		return time.Time{}, fmt.Errorf("malformed date digits in %q", s)
	}

	num := func(from, to, def int) int {
		if to > digits {
			return def
		}
		n := 0
		for _, c := range []byte(s[from:to]) {
			n = n*10 + int(c-'0')
		}
		return n
	}
	year := num(0, 4, 0)
	month := num(4, 6, 1)
	day := num(6, 8, 1)
	hour := num(8, 10, 0)
	min := num(10, 12, 0)
	sec := num(12, 14, 0)

	loc, err := parseOffset(s[digits:])
	if err != nil {
		return time.Time{}, err
	}

	t := time.Date(year, time.Month(month), day, hour, min, sec, 0, loc)
	// time.Date normalizes out-of-range components; a date that moved is
	// not the date that was stored.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != min || t.Second() != sec {
		return time.Time{}, fmt.Errorf("date components out of range in %q", s)
	}
	return t, nil
}

// parseOffset parses the trailing O HH'mm' part of a PDF date string.
func parseOffset(s string) (*time.Location, error) {
	s = strings.TrimSuffix(s, "'")
	if s == "" || s == "Z" || s == "Z00'00" {
		return time.UTC, nil
	}
	sign := 0
	switch s[0] {
	case '+':
		sign = 1
	case '-':
		sign = -1
	default:
		return nil, fmt.Errorf("malformed offset %q", s)
	}
	rest := s[1:]
	if len(rest) != 2 && !(len(rest) == 5 && rest[2] == '\'') {
		return nil, fmt.Errorf("malformed offset %q", s)
	}
	hh := rest[:2]
	mm := "00"
	if len(rest) == 5 {
		mm = rest[3:]
	}
	if !isDigit(hh[0]) || !isDigit(hh[1]) || !isDigit(mm[0]) || !isDigit(mm[1]) {
		return nil, fmt.Errorf("malformed offset %q", s)
	}
	h := int(hh[0]-'0')*10 + int(hh[1]-'0')
	m := int(mm[0]-'0')*10 + int(mm[1]-'0')
	if h > 23 || m > 59 {
		return nil, fmt.Errorf("offset out of range in %q", s)
	}
	secs := sign * (h*60*60 + m*60)
	if secs == 0 {
		return time.UTC, nil
	}
	return time.FixedZone("", secs), nil
}

// FormatEastern renders an instant in the Eastern civil time zone,
// applying the standard/daylight rule for the date in question.
func FormatEastern(t time.Time) string {
	return t.In(Eastern).Format(displayLayout)
}

// ParseDisplay parses an edited display string back into an instant.
// The zone abbreviation is required and fixes the UTC offset, which
// keeps times around a daylight-saving transition unambiguous.
func ParseDisplay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return time.Time{}, fmt.Errorf("missing zone abbreviation in %q", s)
	}
	stamp, zone := s[:i], s[i+1:]

	civil, err := time.Parse("2006-01-02 15:04:05", stamp)
	if err != nil {
		return time.Time{}, err
	}

	var loc *time.Location
	switch zone {
	case "EST":
		loc = time.FixedZone("EST", -5*60*60)
	case "EDT":
		loc = time.FixedZone("EDT", -4*60*60)
	case "UTC", "GMT":
		loc = time.UTC
	default:
		return time.Time{}, fmt.Errorf("unsupported zone %q", zone)
	}

	y, mo, d := civil.Date()
	h, mi, sec := civil.Clock()
	return time.Date(y, mo, d, h, mi, sec, 0, loc), nil
}

// PDFDateString renders an instant as a PDF date string, keeping the
// instant's own UTC offset.
func PDFDateString(t time.Time) string {
	return types.DateString(t)
}

// IsPDFDate reports whether raw holds a parseable PDF date string.
func IsPDFDate(raw string) bool {
	if !strings.HasPrefix(strings.TrimSpace(raw), "D:") {
		return false
	}
	_, err := ParsePDFDate(raw)
	return err == nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
