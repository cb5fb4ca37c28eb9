// Package geo extracts geographic coordinates from free-form note text.
//
// Extraction applies a fixed list of independent patterns and unions the
// results, de-duplicating only by the exact matched substring. Stripping
// re-runs the same patterns on its own; it removes everything
// coordinate-shaped, which is not guaranteed to equal the set of
// coordinates Extract reported. Both behaviours are deliberate.
package geo

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/daybook-labs/daybook/internal/core/domain"
)

// Numeric fragments shared by the patterns. Bare pairs require a decimal
// point so that plain enumerations ("3, 4 and 5") are not mistaken for
// coordinates.
const (
	numFrag = `-?\d{1,3}(?:\.\d+)?`
	decFrag = `-?\d{1,3}\.\d+`
)

// pattern is one independent coordinate matcher.
type pattern struct {
	name string
	re   *regexp.Regexp

	// rawGroup is the submatch index reported as the coordinate's Raw
	// text. 0 means the whole match. The prefixed patterns (GPS:,
	// Location:) report only the numeric pair so that a bare-pattern
	// match of the same pair de-duplicates against them.
	rawGroup int

	// latGroup and lngGroup are the submatch indices of the numeric
	// components.
	latGroup, lngGroup int

	// hemisphere patterns carry extra groups for the N/S and E/W letters.
	latHemiGroup, lngHemiGroup int

	// bounded applies the bare-pair adjacency checks: a match touching
	// brackets, parentheses or more digits belongs to another pattern
	// (or to no coordinate at all).
	bounded bool
}

// patterns is the ordered matcher list. Order matters only for Strip,
// which applies the substitutions sequentially.
var patterns = []pattern{
	{
		name:     "bracketed",
		re:       regexp.MustCompile(`\[\s*(` + numFrag + `)\s*,\s*(` + numFrag + `)\s*\]`),
		latGroup: 1, lngGroup: 2,
	},
	{
		name:     "parenthesized",
		re:       regexp.MustCompile(`\(\s*(` + numFrag + `)\s*,\s*(` + numFrag + `)\s*\)`),
		latGroup: 1, lngGroup: 2,
	},
	{
		name:     "bare",
		re:       regexp.MustCompile(`(` + decFrag + `)\s*,\s*(` + decFrag + `)`),
		latGroup: 1, lngGroup: 2,
		bounded: true,
	},
	{
		name:     "degree",
		re:       regexp.MustCompile(`(\d{1,3}(?:\.\d+)?)\s*°\s*([NSns])\s*,\s*(\d{1,3}(?:\.\d+)?)\s*°\s*([EWew])`),
		latGroup: 1, lngGroup: 3,
		latHemiGroup: 2, lngHemiGroup: 4,
	},
	{
		name:     "gps",
		re:       regexp.MustCompile(`(?i)GPS:\s*((` + numFrag + `)\s*,\s*(` + numFrag + `))`),
		rawGroup: 1, latGroup: 2, lngGroup: 3,
	},
	{
		name:     "location",
		re:       regexp.MustCompile(`(?i)Location:\s*((` + numFrag + `)\s*,\s*(` + numFrag + `))`),
		rawGroup: 1, latGroup: 2, lngGroup: 3,
	},
}

// leftBoundary and rightBoundary are the characters a bare pair must not
// touch. Adjacent digits or dots mean a partial number; adjacent
// brackets or parentheses mean the delimited patterns own the match.
const (
	leftBoundary  = `[(0123456789.`
	rightBoundary = `])0123456789.`
)

// boundedAt reports whether the match at [start,end) respects the bare
// adjacency rules within text.
func boundedAt(text string, start, end int) bool {
	if start > 0 && strings.ContainsRune(leftBoundary, rune(text[start-1])) {
		return false
	}
	if end < len(text) && strings.ContainsRune(rightBoundary, rune(text[end])) {
		return false
	}
	return true
}

// matchSpans returns the [start,end) ranges of all accepted matches of p
// within text, non-overlapping, left to right.
func (p pattern) matchSpans(text string) [][]int {
	all := p.re.FindAllStringSubmatchIndex(text, -1)
	spans := make([][]int, 0, len(all))
	for _, m := range all {
		if p.bounded && !boundedAt(text, m[0], m[1]) {
			continue
		}
		spans = append(spans, m)
	}
	return spans
}

// coordinate parses one accepted submatch-index set into a Coordinate.
// Returns false if the numeric components do not parse or are outside
// the valid latitude/longitude range.
func (p pattern) coordinate(text string, m []int) (domain.Coordinate, bool) {
	lat, err := strconv.ParseFloat(text[m[2*p.latGroup]:m[2*p.latGroup+1]], 64)
	if err != nil {
		return domain.Coordinate{}, false
	}
	lng, err := strconv.ParseFloat(text[m[2*p.lngGroup]:m[2*p.lngGroup+1]], 64)
	if err != nil {
		return domain.Coordinate{}, false
	}

	if p.latHemiGroup > 0 {
		hemi := text[m[2*p.latHemiGroup]:m[2*p.latHemiGroup+1]]
		if strings.EqualFold(hemi, "S") {
			lat = -lat
		}
	}
	if p.lngHemiGroup > 0 {
		hemi := text[m[2*p.lngHemiGroup]:m[2*p.lngHemiGroup+1]]
		if strings.EqualFold(hemi, "W") {
			lng = -lng
		}
	}

	raw := text[m[2*p.rawGroup]:m[2*p.rawGroup+1]]
	c := domain.Coordinate{Lat: lat, Lng: lng, Raw: raw}
	if !c.Valid() {
		return domain.Coordinate{}, false
	}
	return c, true
}

// Extract finds all coordinates in text. Every pattern scans the full
// text independently; results are unioned and de-duplicated by the exact
// Raw substring, preserving first-seen order. Out-of-range pairs are
// silently dropped.
func Extract(text string) []domain.Coordinate {
	var coords []domain.Coordinate
	seen := map[string]bool{}

	for _, p := range patterns {
		for _, m := range p.matchSpans(text) {
			c, ok := p.coordinate(text, m)
			if !ok {
				continue
			}
			if seen[c.Raw] {
				continue
			}
			seen[c.Raw] = true
			coords = append(coords, c)
		}
	}
	return coords
}

// horizontalRun matches runs of spaces and tabs.
var horizontalRun = regexp.MustCompile(`[ \t]+`)

// blankRun matches a newline with any surrounding whitespace, covering
// runs of blank lines.
var blankRun = regexp.MustCompile(`\s*\n\s*`)

// Strip removes everything coordinate-shaped from text: each pattern's
// full matches are deleted in order, then whitespace runs collapse to
// single spaces, blank-line runs collapse to single newlines, and the
// result is trimmed.
func Strip(text string) string {
	for _, p := range patterns {
		spans := p.matchSpans(text)
		if len(spans) == 0 {
			continue
		}
		var b strings.Builder
		prev := 0
		for _, m := range spans {
			b.WriteString(text[prev:m[0]])
			prev = m[1]
		}
		b.WriteString(text[prev:])
		text = b.String()
	}

	text = horizontalRun.ReplaceAllString(text, " ")
	text = blankRun.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// formatPair renders a coordinate as the quoted bracket form used in
// document metadata.
func formatPair(c domain.Coordinate) string {
	return `"[` + formatFloat(c.Lat) + `, ` + formatFloat(c.Lng) + `]"`
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// YAMLBlock renders coordinates as metadata lines: nothing for zero
// coordinates, a single location field for one, a locations list for
// several. Insertion order is preserved.
func YAMLBlock(coords []domain.Coordinate) string {
	switch len(coords) {
	case 0:
		return ""
	case 1:
		return "location: " + formatPair(coords[0])
	default:
		var b strings.Builder
		b.WriteString("locations:")
		for _, c := range coords {
			b.WriteString("\n  - ")
			b.WriteString(formatPair(c))
		}
		return b.String()
	}
}

// Readable formats a coordinate for humans: absolute values with
// hemisphere letters, zero counting as N/E.
func Readable(c domain.Coordinate) string {
	lat, ns := c.Lat, "N"
	if lat < 0 {
		lat, ns = -lat, "S"
	}
	lng, ew := c.Lng, "E"
	if lng < 0 {
		lng, ew = -lng, "W"
	}
	return formatFloat(lat) + "°" + ns + ", " + formatFloat(lng) + "°" + ew
}
