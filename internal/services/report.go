// File: internal/services/report.go

package services

import (
	"time"
	"unicode/utf8"

	"github.com/gigscout/gigscout/internal/models"
)

const (
	redditHost = "https://reddit.com"

	// bodyPreviewLimit caps the post text carried in a ConcertPost.
	bodyPreviewLimit = 500
)

// BuildConcertPost converts a raw Reddit post into the report record
// handed back to callers. Timestamps are rendered in the local timezone
// without an offset, matching the permalink-based URL scheme of the
// public site. A missing author becomes the "[deleted]" sentinel.
func BuildConcertPost(post models.RedditPost) models.ConcertPost {
	dates, times := ExtractConcertFields(post.Title, post.SelfText)

	author := post.Author
	if author == "" {
		author = "[deleted]"
	}

	// The preview limit counts characters, not bytes; slicing on a byte
	// offset could split a multibyte rune and emit invalid UTF-8.
	text := post.SelfText
	if utf8.RuneCountInString(text) > bodyPreviewLimit {
		text = string([]rune(text)[:bodyPreviewLimit]) + "..."
	}

	return models.ConcertPost{
		Title:      post.Title,
		URL:        redditHost + post.Permalink,
		Subreddit:  post.Subreddit,
		Score:      post.Score,
		CreatedUTC: time.Unix(post.CreatedUTC, 0).Format("2006-01-02T15:04:05"),
		Text:       text,
		DatesFound: dates,
		TimesFound: times,
		Author:     author,
	}
}
