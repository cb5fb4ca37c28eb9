package domain

import "time"

// LogEntry is a single meaningful line of a source note after cleanup.
type LogEntry struct {
	// Content is the cleaned entry text. Never empty after segmentation.
	Content string

	// Coordinate is the first coordinate found on the entry's line, if any.
	Coordinate *Coordinate
}

// SourceNote is a dated input document materialised for one processing
// cycle. It is never mutated after construction.
type SourceNote struct {
	// Path is the note's location in the vault.
	Path string

	// Date is the note's calendar date, derived from its filename.
	Date time.Time

	// Entries are the segmented log lines.
	Entries []LogEntry

	// Coordinates is the union of all coordinates found anywhere in the
	// raw body, including lines the segmenter filtered out. A superset
	// of the per-entry coordinates.
	Coordinates []Coordinate

	// Frontmatter holds scalar key/value pairs from the note's leading
	// YAML block, if one was present and parseable.
	Frontmatter map[string]string
}

// Body joins the entry contents into the text sent to the AI provider.
func (n *SourceNote) Body() string {
	out := ""
	for i, e := range n.Entries {
		if i > 0 {
			out += "\n"
		}
		out += e.Content
	}
	return out
}
