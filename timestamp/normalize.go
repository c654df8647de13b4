// Package timestamp canonicalises the call start times found in CDR files.
package timestamp

import "time"

// Canonical is the layout every recognised timestamp is rewritten to.
const Canonical = "2006-01-02 15:04:05"

/* ──────────── accepted input layouts (tried in order, first wins) ──────────── */

// The 12-hour layout carries no meridiem marker, so it can only ever read
// morning hours. Every value it accepts is also accepted by the 24-hour layout
// ahead of it; it stays in the list so the matching order is unchanged.
var layouts = []layout{
	{format: "2006-01-02:15:04:05"},
	{format: "2006-01-02:03:04:05"},
	{format: "2006-01-02 15:04:05"},
	{format: "2006-01-02T15:04:05", fraction: true},
	{format: "2006-01-02T15:04"},
}

// layout is one fixed-width input pattern. time.Parse alone is looser than
// that: "15" takes a single hour digit and any seconds field takes a
// trailing fraction, so matches are re-checked with fits.
type layout struct {
	format   string
	fraction bool // ".fff" allowed after the seconds
}

func (l layout) fits(s string) bool {
	n := len(l.format)
	if len(s) == n {
		return true
	}
	// time.Parse has already checked the fraction digits.
	return l.fraction && len(s) > n+1 && s[n] == '.'
}

// Layouts returns a copy of the accepted input layouts in matching order.
func Layouts() []string {
	out := make([]string, len(layouts))
	for i, l := range layouts {
		out[i] = l.format
	}
	return out
}

// Normalize returns raw rewritten in the Canonical layout, or raw unchanged
// when none of the accepted layouts match.
func Normalize(raw string) string {
	if t, ok := Parse(raw); ok {
		return t.Format(Canonical)
	}
	return raw
}

// Parse reports the first successful interpretation of raw. Input is matched
// as is: surrounding whitespace makes it unrecognised.
func Parse(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, l := range layouts {
		t, err := time.Parse(l.format, raw)
		if err == nil && l.fits(raw) {
			return t, true
		}
	}
	return time.Time{}, false
}
