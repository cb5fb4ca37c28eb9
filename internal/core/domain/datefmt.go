package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date-format tokens understood by templates, longest first so that a
// single scan never matches a prefix of a longer token (MMMM before MM
// before M).
var dateTokens = []string{
	"YYYY", "MMMM", "dddd",
	"MMM", "ddd",
	"YY", "MM", "DD", "HH", "hh", "mm", "ss",
	"M", "D", "H", "h",
}

// tokenValue computes the substitution for one token from t's local
// calendar fields.
func tokenValue(token string, t time.Time) string {
	switch token {
	case "YYYY":
		return fmt.Sprintf("%04d", t.Year())
	case "YY":
		return fmt.Sprintf("%02d", t.Year()%100)
	case "MMMM":
		return t.Month().String()
	case "MMM":
		return t.Month().String()[:3]
	case "MM":
		return fmt.Sprintf("%02d", int(t.Month()))
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "DD":
		return fmt.Sprintf("%02d", t.Day())
	case "D":
		return strconv.Itoa(t.Day())
	case "dddd":
		return t.Weekday().String()
	case "ddd":
		return t.Weekday().String()[:3]
	case "HH":
		return fmt.Sprintf("%02d", t.Hour())
	case "H":
		return strconv.Itoa(t.Hour())
	case "hh":
		return fmt.Sprintf("%02d", hour12(t))
	case "h":
		return strconv.Itoa(hour12(t))
	case "mm":
		return fmt.Sprintf("%02d", t.Minute())
	case "ss":
		return fmt.Sprintf("%02d", t.Second())
	default:
		return token
	}
}

// hour12 converts a 24-hour clock value to the 12-hour clock.
func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	return h
}

// RenderTemplate substitutes date tokens in template with values from t.
// Tokens are matched longest-first in a single left-to-right scan, so
// substituted text (month or weekday names) is never re-scanned.
func RenderTemplate(template string, t time.Time) string {
	var b strings.Builder
	i := 0
	for i < len(template) {
		matched := false
		for _, token := range dateTokens {
			if strings.HasPrefix(template[i:], token) {
				b.WriteString(tokenValue(token, t))
				i += len(token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(template[i])
			i++
		}
	}
	return b.String()
}

// illegalFilenameChars matches characters that are not allowed in
// filenames on at least one supported platform.
var illegalFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// whitespaceRun matches runs of whitespace for collapsing.
var whitespaceRun = regexp.MustCompile(`\s+`)

// SanitizeFilename makes a rendered filename safe to write: illegal
// characters become "-", internal whitespace collapses to single spaces,
// leading dots are stripped, and a ".md" extension is forced when the
// result has none.
func SanitizeFilename(name string) string {
	name = illegalFilenameChars.ReplaceAllString(name, "-")
	name = whitespaceRun.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	name = strings.TrimLeft(name, ".")
	if filepath.Ext(name) == "" {
		name += ".md"
	}
	return name
}

// RenderFilename renders a destination filename from a date template and
// sanitizes the result.
func RenderFilename(template string, t time.Time) string {
	return SanitizeFilename(RenderTemplate(template, t))
}

// tokenPattern returns the regexp fragment matching one token's rendered
// value, capturing the calendar fields needed to rebuild a date.
func tokenPattern(token string) string {
	switch token {
	case "YYYY":
		return `(?P<year>\d{4})`
	case "YY":
		return `(?P<shortyear>\d{2})`
	case "MMMM":
		return `(?P<monthname>[A-Za-z]+)`
	case "MMM":
		return `(?P<shortmonth>[A-Za-z]{3})`
	case "MM":
		return `(?P<month>\d{2})`
	case "M":
		return `(?P<month>\d{1,2})`
	case "DD":
		return `(?P<day>\d{2})`
	case "D":
		return `(?P<day>\d{1,2})`
	case "dddd", "ddd":
		return `[A-Za-z]+`
	case "HH", "hh", "mm", "ss":
		return `\d{2}`
	case "H", "h":
		return `\d{1,2}`
	default:
		return regexp.QuoteMeta(token)
	}
}

// ParseDate recovers a calendar date from a source-note filename that was
// written with the given date-format template. The name is matched
// without its extension. Returns ErrInvalidInput when the name does not
// match or the template carries no usable date fields.
func ParseDate(name, template string) (time.Time, error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))

	var pattern strings.Builder
	pattern.WriteString(`^`)
	seen := map[string]bool{}
	i := 0
	for i < len(template) {
		matched := false
		for _, token := range dateTokens {
			if strings.HasPrefix(template[i:], token) {
				frag := tokenPattern(token)
				// A named group may appear only once per pattern.
				if g := groupName(frag); g != "" && seen[g] {
					frag = anonymise(frag)
				} else if g != "" {
					seen[g] = true
				}
				pattern.WriteString(frag)
				i += len(token)
				matched = true
				break
			}
		}
		if !matched {
			pattern.WriteString(regexp.QuoteMeta(string(template[i])))
			i++
		}
	}
	pattern.WriteString(`$`)

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date template %q", ErrInvalidInput, template)
	}

	m := re.FindStringSubmatch(base)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match date template %q", ErrInvalidInput, name, template)
	}

	fields := map[string]string{}
	for idx, gname := range re.SubexpNames() {
		if gname != "" && idx < len(m) {
			fields[gname] = m[idx]
		}
	}

	year, err := parseYear(fields)
	if err != nil {
		return time.Time{}, err
	}
	month, err := parseMonth(fields)
	if err != nil {
		return time.Time{}, err
	}
	day, ok := fields["day"]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: date template %q has no day token", ErrInvalidInput, template)
	}
	d, _ := strconv.Atoi(day)

	t := time.Date(year, month, d, 0, 0, 0, 0, time.Local)
	// time.Date normalises overflow (e.g. Feb 30); reject silently
	// normalised dates as malformed.
	if t.Day() != d || t.Month() != month || t.Year() != year {
		return time.Time{}, fmt.Errorf("%w: %q is not a real date", ErrInvalidInput, name)
	}
	return t, nil
}

// groupName extracts the capture-group name from a pattern fragment.
func groupName(frag string) string {
	if !strings.HasPrefix(frag, "(?P<") {
		return ""
	}
	end := strings.Index(frag, ">")
	if end < 0 {
		return ""
	}
	return frag[4:end]
}

// anonymise strips the group name from a pattern fragment.
func anonymise(frag string) string {
	end := strings.Index(frag, ">")
	if end < 0 {
		return frag
	}
	return "(" + frag[end+1:]
}

func parseYear(fields map[string]string) (int, error) {
	if y, ok := fields["year"]; ok {
		return strconv.Atoi(y)
	}
	if y, ok := fields["shortyear"]; ok {
		v, err := strconv.Atoi(y)
		if err != nil {
			return 0, err
		}
		return 2000 + v, nil
	}
	return 0, fmt.Errorf("%w: date template has no year token", ErrInvalidInput)
}

func parseMonth(fields map[string]string) (time.Month, error) {
	if m, ok := fields["month"]; ok {
		v, err := strconv.Atoi(m)
		if err != nil || v < 1 || v > 12 {
			return 0, fmt.Errorf("%w: bad month %q", ErrInvalidInput, m)
		}
		return time.Month(v), nil
	}
	name := fields["monthname"]
	if name == "" {
		name = fields["shortmonth"]
	}
	if name == "" {
		return 0, fmt.Errorf("%w: date template has no month token", ErrInvalidInput)
	}
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) || strings.EqualFold(m.String()[:3], name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown month %q", ErrInvalidInput, name)
}
