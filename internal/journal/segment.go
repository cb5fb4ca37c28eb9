package journal

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/daybook-labs/daybook/internal/core/domain"
	"github.com/daybook-labs/daybook/internal/geo"
)

// minEntryLength is the shortest line, in runes, considered a log entry.
const minEntryLength = 5

// numberedMarker matches a leading numbered-list marker ("1. ", "2) ").
var numberedMarker = regexp.MustCompile(`^\d+[.)]\s+`)

// bulletMarkers are the list prefixes stripped from entry lines.
var bulletMarkers = []string{"- ", "* ", "+ "}

// checkboxMarkers are the checkbox prefixes stripped from entry lines.
// The "- "-prefixed forms only apply when the bullet pass left them
// intact (it will not have, for well-formed lines); they are kept for
// lines where the checkbox follows other decoration.
var checkboxMarkers = []string{"- [ ] ", "- [x] ", "- [X] ", "[ ] ", "[x] ", "[X] "}

// cleanLine removes one layer of list decoration: bullet markers, then
// numbered-list markers, then checkbox markers, each applied at most
// once as a literal prefix removal. Nested markers beyond one layer per
// kind are deliberately left in place.
func cleanLine(line string) string {
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(line, marker) {
			line = strings.TrimPrefix(line, marker)
			break
		}
	}
	line = numberedMarker.ReplaceAllString(line, "")
	for _, marker := range checkboxMarkers {
		if strings.HasPrefix(line, marker) {
			line = strings.TrimPrefix(line, marker)
			break
		}
	}
	return strings.TrimSpace(line)
}

// skippable reports whether a trimmed line carries no log content:
// blank lines, markdown headings, horizontal rules, HTML comment
// openers, and lines too short to mean anything.
func skippable(line string) bool {
	if line == "" {
		return true
	}
	if strings.HasPrefix(line, "#") {
		return true
	}
	if strings.HasPrefix(line, "---") {
		return true
	}
	if strings.HasPrefix(line, "<!--") {
		return true
	}
	return utf8.RuneCountInString(line) < minEntryLength
}

// Segment splits a note body into discrete log entries, one per
// meaningful line. Each entry keeps the first coordinate found on its
// line; coordinate text is stripped from the entry content.
func Segment(body string) []domain.LogEntry {
	var entries []domain.LogEntry

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if skippable(line) {
			continue
		}

		line = cleanLine(line)
		if utf8.RuneCountInString(line) < minEntryLength {
			continue
		}

		var coord *domain.Coordinate
		if found := geo.Extract(line); len(found) > 0 {
			first := found[0]
			coord = &first
		}

		content := geo.Strip(line)
		if content == "" {
			continue
		}

		entries = append(entries, domain.LogEntry{
			Content:    content,
			Coordinate: coord,
		})
	}
	return entries
}

// ParseNote materialises a source note from its raw text: frontmatter is
// parsed and removed, the remaining body is segmented, and the
// note-level coordinate list is the union of everything found in the
// body, including lines the segmenter dropped.
func ParseNote(path string, date time.Time, raw string) *domain.SourceNote {
	fields, body := ParseFrontmatter(raw)

	return &domain.SourceNote{
		Path:        path,
		Date:        date,
		Entries:     Segment(body),
		Coordinates: geo.Extract(body),
		Frontmatter: fields,
	}
}
