package journal

import (
	"regexp"
	"strings"
	"time"

	"github.com/daybook-labs/daybook/internal/core/domain"
	"github.com/daybook-labs/daybook/internal/geo"
)

// excessNewlines matches runs of three or more newlines for collapsing.
var excessNewlines = regexp.MustCompile(`\n{3,}`)

// Assemble merges the processed content, sentiment and the source note's
// coordinates into a generated document.
func Assemble(note *domain.SourceNote, processedContent string, sentiment domain.Sentiment) *domain.GeneratedDocument {
	return &domain.GeneratedDocument{
		Title:       domain.LongDate(note.Date),
		Content:     strings.TrimSpace(processedContent),
		Date:        note.Date,
		Coordinates: note.Coordinates,
		SourceFile:  note.Path,
		Sentiment:   &sentiment,
	}
}

// Render produces the document's full text: a metadata header block,
// a blank line, the title as a top-level heading, and the body with
// runs of three or more newlines collapsed to two.
func Render(doc *domain.GeneratedDocument, createdAt time.Time) string {
	var b strings.Builder

	b.WriteString("---\n")
	b.WriteString("date: " + doc.Date.Format("2006-01-02") + "\n")
	b.WriteString("source: " + doc.SourceFile + "\n")
	b.WriteString("created: " + createdAt.Format(time.RFC3339) + "\n")
	if doc.Sentiment != nil {
		b.WriteString("sentiment: " + doc.Sentiment.String() + "\n")
	}
	if block := geo.YAMLBlock(doc.Coordinates); block != "" {
		b.WriteString(block + "\n")
	}
	b.WriteString("---\n")

	b.WriteString("\n# " + doc.Title + "\n\n")
	b.WriteString(excessNewlines.ReplaceAllString(doc.Content, "\n\n"))
	b.WriteString("\n")

	return b.String()
}
