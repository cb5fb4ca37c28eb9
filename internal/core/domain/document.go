package domain

import (
	"fmt"
	"time"
)

// GeneratedDocument is the AI-transformed output for one source note.
// It is produced once per note and written to exactly one destination
// path derived from Date, overwriting any prior document there.
type GeneratedDocument struct {
	// Title is the note's date as a long human date, e.g. "September 2nd, 2025".
	Title string

	// Content is the processed body text returned by the AI provider,
	// with the sentiment tag already removed.
	Content string

	// Date is the source note's calendar date.
	Date time.Time

	// Coordinates are all coordinates found in the source note's body.
	Coordinates []Coordinate

	// SourceFile is the vault path of the originating note.
	SourceFile string

	// Sentiment is the mood classification, if one was parsed.
	Sentiment *Sentiment
}

// LongDate formats a date as a long human date with an ordinal day,
// e.g. "September 2nd, 2025".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s %d%s, %d", t.Month(), t.Day(), ordinalSuffix(t.Day()), t.Year())
}

// ordinalSuffix returns the English ordinal suffix for a day of month.
func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
