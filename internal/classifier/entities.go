package classifier

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var datePatterns = compileAll(
	`(?i)\btoday\b`, `(?i)\btomorrow\b`, `(?i)\byesterday\b`,
	`(?i)\bthis week\b`, `(?i)\bnext week\b`, `(?i)\bthis month\b`,
	`(?i)\bmonday\b`, `(?i)\btuesday\b`, `(?i)\bwednesday\b`, `(?i)\bthursday\b`,
	`(?i)\bfriday\b`, `(?i)\bsaturday\b`, `(?i)\bsunday\b`,
	`\d{1,2}/\d{1,2}/\d{2,4}`, // 12/31/2024
	`\d{1,2}-\d{1,2}-\d{2,4}`, // 12-31-2024
	`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{1,2}\b`,
)

// Case-sensitive. Group 1 is the name.
var personPatterns = compileAll(
	`\bwith\s+([A-Z][a-z]+)`,
	`\bby\s+([A-Z][a-z]+)`,
	`\bassign\s+to\s+([A-Z][a-z]+)`,
	`\bfor\s+([A-Z][a-z]+)`,
)

var locationPatterns = compileAll(
	`\bat\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`,
	`\bin\s+(?:the\s+)?([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`,
	`(?:Room|Office|Building)\s+(\w+)`,
)

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// ExtractEntities runs the four extractors over the original-case text.
func ExtractEntities(title, description string) Entities {
	text := title + " " + description

	return Entities{
		Dates:     ExtractDates(text),
		People:    ExtractPeople(text),
		Locations: ExtractLocations(text),
		Actions:   ExtractActions(text),
	}
}

// ExtractDates keeps each match as written, so "Today" and "today" are distinct.
func ExtractDates(text string) []string {
	set := newStringSet()
	for _, re := range datePatterns {
		for _, m := range re.FindAllString(text, -1) {
			set.add(m)
		}
	}
	return set.items
}

func ExtractPeople(text string) []string {
	return collectGroup(personPatterns, text)
}

func ExtractLocations(text string) []string {
	return collectGroup(locationPatterns, text)
}

// ExtractActions reports every vocabulary verb found anywhere in the text.
func ExtractActions(text string) []string {
	lower := strings.ToLower(text)
	set := newStringSet()
	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			set.add(capitalize(verb))
		}
	}
	return set.items
}

func collectGroup(patterns []*regexp.Regexp, text string) []string {
	set := newStringSet()
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) > 1 && m[1] != "" {
				set.add(m[1])
			}
		}
	}
	return set.items
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// stringSet preserves first-seen order so output is stable across calls.
type stringSet struct {
	seen  map[string]struct{}
	items []string
}

func newStringSet() *stringSet {
	return &stringSet{seen: map[string]struct{}{}, items: []string{}}
}

func (s *stringSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}
