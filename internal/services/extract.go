// File: internal/services/extract.go

package services

import "regexp"

// Date and time patterns applied to post text. Matching is purely
// lexical: no calendar validation, no dedup across patterns, matches
// reported in document order pattern by pattern. A pattern with a
// capture group contributes the group instead of the whole match.
var datePatterns = []*regexp.Regexp{
	// MM/DD/YYYY or DD/MM/YYYY with 2-4 digit years
	regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`),
	// YYYY/MM/DD
	regexp.MustCompile(`\d{4}[/-]\d{1,2}[/-]\d{1,2}`),
	// "January 15, 2025"
	regexp.MustCompile(`(?i)(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}`),
	// "15 Jan 2025", "3 September 2025"
	regexp.MustCompile(`(?i)\d{1,2}\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{4}`),
}

var timePatterns = []*regexp.Regexp{
	// "9:30", "9:30pm"
	regexp.MustCompile(`(?i)\d{1,2}:\d{2}(?:\s*(?:am|pm))?`),
	// bare hour with a mandatory suffix: "8pm" but not the "30pm" inside "9:30pm"
	regexp.MustCompile(`(?i)(?:^|[^:\d])(\d{1,2}\s*(?:am|pm))`),
	// "doors at 8:00"
	regexp.MustCompile(`(?i)doors?\s+(?:at\s+)?\d{1,2}:\d{2}`),
	// "show at 9:30"
	regexp.MustCompile(`(?i)show\s+(?:at\s+)?\d{1,2}:\d{2}`),
}

// ExtractConcertFields scans the concatenated title and body for
// date-like and time-like substrings.
func ExtractConcertFields(title, body string) (dates, times []string) {
	text := title + " " + body

	dates = findAll(datePatterns, text)
	times = findAll(timePatterns, text)
	return dates, times
}

func findAll(patterns []*regexp.Regexp, text string) []string {
	var out []string
	for _, pattern := range patterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			if len(m) > 1 {
				out = append(out, m[1])
			} else {
				out = append(out, m[0])
			}
		}
	}
	return out
}
