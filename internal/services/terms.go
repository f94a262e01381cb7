// File: internal/services/terms.go

package services

import "fmt"

// concertTerms is the fixed vocabulary combined with the artist (and
// location, when given) to build search query variations.
var concertTerms = []string{"concert", "show", "tour", "festival", "setlist", "live"}

// GenerateSearchTerms expands an artist/location pair into an ordered
// list of query strings. The artist alone always comes first, followed
// by the two artist/location combinations when a location is given,
// then the vocabulary combinations in vocabulary order with artist-first
// variants before term-first ones. No deduplication is performed.
//
// Without a location the result has 13 entries; with one it has 27.
func GenerateSearchTerms(artist, location string) []string {
	terms := []string{artist}

	if location != "" {
		terms = append(terms,
			fmt.Sprintf("%s %s", artist, location),
			fmt.Sprintf("%s %s", location, artist),
		)
	}

	for _, term := range concertTerms {
		terms = append(terms,
			fmt.Sprintf("%s %s", artist, term),
			fmt.Sprintf("%s %s", term, artist),
		)
		if location != "" {
			terms = append(terms,
				fmt.Sprintf("%s %s %s", artist, term, location),
				fmt.Sprintf("%s %s %s", location, artist, term),
			)
		}
	}

	return terms
}
