// File: internal/models/search.go

package models

// SearchMode selects the subreddit set, query shape and acceptance
// policy used by the concert search service.
type SearchMode string

const (
	ModeGeneral SearchMode = "general"
	ModeSetlist SearchMode = "setlist"
	ModeEDM     SearchMode = "edm"
)

// SearchRequest represents an incoming concert search request
type SearchRequest struct {
	Artist    string     `json:"artist"`
	Location  string     `json:"location,omitempty"`
	Venue     string     `json:"venue,omitempty"`
	Festival  string     `json:"festival,omitempty"`
	DateRange string     `json:"date_range,omitempty"`
	Mode      SearchMode `json:"-"`
}

// RedditPost is a single raw post as returned by the Reddit API.
// An empty Author means the account was deleted or is unavailable.
type RedditPost struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	SelfText   string `json:"selftext"`
	Subreddit  string `json:"subreddit"`
	Author     string `json:"author"`
	Score      int    `json:"score"`
	CreatedUTC int64  `json:"createdUtc"`
	Permalink  string `json:"permalink"`
}

// ConcertPost is the report record derived from a RedditPost: the post
// identity plus the date and time strings pulled out of its text.
type ConcertPost struct {
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Subreddit  string   `json:"subreddit"`
	Score      int      `json:"score"`
	CreatedUTC string   `json:"created_utc"`
	Text       string   `json:"text"`
	DatesFound []string `json:"dates_found"`
	TimesFound []string `json:"times_found"`
	Author     string   `json:"author"`
}

// ConcertDate is one flattened entry of the date listing.
type ConcertDate struct {
	Date      string   `json:"date"`
	Title     string   `json:"title"`
	Subreddit string   `json:"subreddit"`
	URL       string   `json:"url"`
	Times     []string `json:"times"`
}

// SearchResponse is the HTTP payload for all three search endpoints.
// Results are grouped by subreddit; subreddits with no accepted posts
// are absent from the map.
type SearchResponse struct {
	Success         bool                     `json:"success"`
	Artist          string                   `json:"artist"`
	Location        string                   `json:"location,omitempty"`
	Venue           string                   `json:"venue,omitempty"`
	Festival        string                   `json:"festival,omitempty"`
	Results         map[string][]ConcertPost `json:"results"`
	TotalSubreddits int                      `json:"total_subreddits"`
	TotalPosts      int                      `json:"total_posts"`
}
