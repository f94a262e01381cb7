// File: internal/services/relevance.go

package services

import (
	"strings"

	"github.com/gigscout/gigscout/internal/models"
)

// concertKeywords are the terms whose presence marks a post as concert
// related once the artist (and location, if given) matched.
var concertKeywords = []string{
	"concert", "show", "tour", "festival", "setlist", "live",
	"venue", "tickets", "date", "time", "schedule", "lineup",
	"performance", "gig", "event", "appearance", "playing", "stage",
	"music", "song", "album", "release", "new", "upcoming", "announced",
}

// alwaysRelevantSubreddits are communities dedicated to live music; a
// post from one of them passes the keyword check automatically.
var alwaysRelevantSubreddits = map[string]bool{
	"concert":   true,
	"edm":       true,
	"livemusic": true,
	"umf":       true,
	"setlist":   true,
	"festivals": true,
}

// IsRelevantPost reports whether a post is relevant to a concert search
// for the given artist and optional location. The artist name must
// appear in the post text; when a location is given it must appear too.
// Beyond that, either a concert keyword in the text or a dedicated
// live-music subreddit qualifies the post.
func IsRelevantPost(post models.RedditPost, artist, location string) bool {
	text := strings.ToLower(post.Title + " " + post.SelfText)

	if !strings.Contains(text, strings.ToLower(artist)) {
		return false
	}

	if location != "" && !strings.Contains(text, strings.ToLower(location)) {
		return false
	}

	for _, keyword := range concertKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}

	return alwaysRelevantSubreddits[strings.ToLower(post.Subreddit)]
}
