package edgar

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// missingMarkers are cell contents that mean "no value reported".
var missingMarkers = map[string]struct{}{
	"":    {},
	"n/a": {},
	"--":  {},
	"nan": {},
}

// NormalizeNumber converts a raw table cell into a signed numeric value.
// It returns nil for missing markers and for strings that do not survive
// parsing; it never errors. Parenthesized values are negative. The unit
// multiplier applies only to currency-bearing cells (those containing "$");
// plain numbers such as share counts pass through unscaled. Fractional digits
// are truncated, matching the integer coercion of EDGAR's rendered figures.
func NormalizeNumber(raw string, unitMultiplier float64) *float64 {
	s := strings.TrimSpace(raw)
	if _, ok := missingMarkers[strings.ToLower(s)]; ok {
		return nil
	}

	negative := strings.Contains(s, "(") && strings.Contains(s, ")")
	if negative {
		s = strings.ReplaceAll(s, "(", "")
		s = strings.ReplaceAll(s, ")", "")
	}

	currency := strings.Contains(s, "$")

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	s = b.String()
	if s == "" {
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n := math.Trunc(f)
	if negative {
		n = -n
	}
	if currency {
		n *= unitMultiplier
	}
	return &n
}

// monthAbbrevs maps English three-letter month abbreviations to full names.
var monthAbbrevs = map[string]string{
	"Jan": "January", "Feb": "February", "Mar": "March", "Apr": "April",
	"May": "May", "Jun": "June", "Jul": "July", "Aug": "August",
	"Sep": "September", "Oct": "October", "Nov": "November", "Dec": "December",
}

// dateLayouts are the header date formats observed in rendered statements,
// tried after month abbreviations are expanded and periods stripped.
var dateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"2 January 2006",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// NormalizeDate canonicalizes a column header date such as "Jan. 31, 2020".
// Month abbreviations are expanded to full English names token by token, so
// already-expanded dates pass through unchanged, then period characters are
// stripped and the result parsed. Returns a *DateParseError when no layout
// matches.
func NormalizeDate(raw string) (time.Time, error) {
	fields := strings.Fields(strings.TrimSpace(raw))
	for i, f := range fields {
		trimmed := strings.TrimRight(f, ".,")
		if full, ok := monthAbbrevs[trimmed]; ok {
			fields[i] = strings.Replace(f, trimmed, full, 1)
		}
	}
	s := strings.ReplaceAll(strings.Join(fields, " "), ".", "")

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &DateParseError{Raw: raw}
}
