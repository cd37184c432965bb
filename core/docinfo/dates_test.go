package docinfo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePDFDateFull(t *testing.T) {
	got, err := ParsePDFDate("D:20240315120000-05'00'")
	require.NoError(t, err)
	want := time.Date(2024, 3, 15, 12, 0, 0, 0, time.FixedZone("", -5*60*60))
	assert.True(t, got.Equal(want), "got %v", got)
}

func TestParsePDFDatePartial(t *testing.T) {
	// Everything after the year is optional; missing offset means UTC.
	for in, want := range map[string]time.Time{
		"D:2024":           time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		"D:202407":         time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		"D:20240715":       time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		"D:2024071512":     time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC),
		"D:20240110080000": time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC),
		"20240110080000":   time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC),
	} {
		got, err := ParsePDFDate(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(want), "%s: got %v", in, got)
	}
}

func TestParsePDFDateOffsets(t *testing.T) {
	for in, want := range map[string]time.Time{
		"D:20240110080000Z":       time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC),
		"D:20240110080000Z00'00'": time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC),
		"D:20240110080000+05'30'": time.Date(2024, 1, 10, 8, 0, 0, 0, time.FixedZone("", 5*3600+30*60)),
		"D:20240110080000-05":     time.Date(2024, 1, 10, 8, 0, 0, 0, time.FixedZone("", -5*3600)),
		"D:20240110080000+00'00'": time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC),
	} {
		got, err := ParsePDFDate(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(want), "%s: got %v", in, got)
	}
}

func TestParsePDFDateMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"not-a-date",
		"D:",
		"D:20",      // year needs four digits
		"D:2024131", // odd digit count
		"D:20241301120000",        // month 13
		"D:20240232120000",        // Feb 32
		"D:20240110080000*05'00'", // bad offset marker
		"D:20240110080000-99'00'", // offset out of range
	} {
		_, err := ParsePDFDate(in)
		assert.Error(t, err, in)
	}
}

func TestFormatEasternWinter(t *testing.T) {
	d, err := ParsePDFDate("D:20240110080000Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10 03:00:00 EST", FormatEastern(d))
}

func TestFormatEasternSummer(t *testing.T) {
	d, err := ParsePDFDate("D:20240715120000Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-07-15 08:00:00 EDT", FormatEastern(d))
}

func TestFormatEasternHonorsStoredOffset(t *testing.T) {
	// March 15 is inside daylight saving: noon at -05:00 is 13:00 EDT.
	d, err := ParsePDFDate("D:20240315120000-05'00'")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15 13:00:00 EDT", FormatEastern(d))
}

func TestFormatEasternDSTBoundary(t *testing.T) {
	// 2024-03-10 07:00:00Z is the instant clocks spring forward:
	// 02:00 EST becomes 03:00 EDT.
	at, err := ParsePDFDate("D:20240310070000Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10 03:00:00 EDT", FormatEastern(at))

	before, err := ParsePDFDate("D:20240310065959Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10 01:59:59 EST", FormatEastern(before))
}

func TestParseDisplay(t *testing.T) {
	got, err := ParseDisplay("2024-01-10 03:00:00 EST")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)))

	got, err = ParseDisplay("2024-07-15 08:00:00 EDT")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)))
}

func TestParseDisplayMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"not-a-date",
		"2024-01-10 03:00:00",     // zone abbreviation required
		"2024-01-10 03:00:00 XYZ", // unknown zone
		"2024-02-30 03:00:00 EST", // day out of range is not coerced
		"2024-01-10T03:00:00 EST",
	} {
		_, err := ParseDisplay(in)
		assert.Error(t, err, in)
	}
}

// Formatting a stored date and parsing the result back must denote the
// same instant, across standard time, daylight time, and the spring
// transition itself.
func TestDateRoundTripPreservesInstant(t *testing.T) {
	for _, raw := range []string{
		"D:20240110080000Z",       // winter, standard offset
		"D:20240715120000Z",       // summer, daylight offset
		"D:20240310070000Z",       // exactly at the spring transition
		"D:20240315120000-05'00'", // explicit stored offset
		"D:20231105053000+01'00'", // near the fall transition
	} {
		orig, err := ParsePDFDate(raw)
		require.NoError(t, err, raw)

		display := FormatEastern(orig)
		back, err := ParseDisplay(display)
		require.NoError(t, err, display)
		assert.True(t, back.Equal(orig), "%s: %s -> %v != %v", raw, display, back, orig)

		// And the re-encoded PDF date string denotes the same instant.
		reparsed, err := ParsePDFDate(PDFDateString(back))
		require.NoError(t, err)
		assert.True(t, reparsed.Equal(orig), raw)
	}
}

func TestIsPDFDate(t *testing.T) {
	assert.True(t, IsPDFDate("D:20240315120000-05'00'"))
	assert.True(t, IsPDFDate("D:2024"))
	assert.False(t, IsPDFDate("20240315120000"))
	assert.False(t, IsPDFDate("Report"))
	assert.False(t, IsPDFDate("D:notadate"))
}
