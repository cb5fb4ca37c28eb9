// Package journal parses the loose daily-log note format: an optional
// YAML frontmatter block followed by bullet or checkbox lines, one log
// entry per meaningful line. It also assembles the generated output
// document.
package journal

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// ParseFrontmatter splits a leading frontmatter block off a note body.
// It returns the block's scalar key/value pairs and the remaining body.
// Nested values are discarded. A missing or unparseable block yields nil
// fields and the body unchanged.
func ParseFrontmatter(body string) (map[string]string, string) {
	normalised := strings.ReplaceAll(body, "\r\n", "\n")
	if !strings.HasPrefix(normalised, frontmatterDelimiter+"\n") {
		return nil, body
	}

	rest := normalised[len(frontmatterDelimiter)+1:]

	var block, remainder string
	if end := strings.Index(rest, "\n"+frontmatterDelimiter+"\n"); end >= 0 {
		block = rest[:end]
		remainder = rest[end+2+len(frontmatterDelimiter):]
	} else if strings.HasSuffix(rest, "\n"+frontmatterDelimiter) {
		block = rest[:len(rest)-len(frontmatterDelimiter)-1]
	} else {
		return nil, body
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(block), &raw); err != nil {
		return nil, body
	}

	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			fields[key] = v
		case bool:
			fields[key] = fmt.Sprintf("%t", v)
		case int, int64, uint64:
			fields[key] = fmt.Sprintf("%d", v)
		case float64:
			fields[key] = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v), "0"), ".")
		default:
			// Nested structures are out of scope.
		}
	}
	return fields, remainder
}
