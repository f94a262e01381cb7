// File: internal/services/concerts.go

package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"github.com/gigscout/gigscout/internal/metrics"
	"github.com/gigscout/gigscout/internal/models"
)

var (
	// ErrRedditUnavailable means the Reddit client was never set up
	// (missing credentials or failed handshake). Fatal for every call.
	ErrRedditUnavailable = errors.New("reddit client not initialized, check credentials")

	// ErrArtistRequired rejects a request before any Reddit call is made.
	ErrArtistRequired = errors.New("artist name is required")
)

// Subreddit sets per search mode.
var (
	concertSubreddits = []string{
		"concert", "edm", "livemusic", "UMF", "setlist", "festivals",
		"electronicmusic", "aves", "edmprodcirclejerk", "electronicdancemusic",
	}
	setlistSubreddits = []string{"setlist", "concert", "edm", "livemusic", "UMF"}
	edmSubreddits     = []string{"edm", "UMF", "electronicmusic", "aves", "festivals", "edmprodcirclejerk"}
)

const (
	// maxGeneralQueries caps how many generated terms run per subreddit.
	maxGeneralQueries = 3

	// maxDateListings caps the flattened date listing.
	maxDateListings = 10
)

// AcceptancePolicy decides whether a deduplicated post becomes part of
// the result set. Each mode has its own policy.
type AcceptancePolicy func(post models.RedditPost, req models.SearchRequest) bool

// AcceptAll keeps every post. General searches rely on the caller to
// filter downstream.
func AcceptAll() AcceptancePolicy {
	return func(models.RedditPost, models.SearchRequest) bool { return true }
}

// RequireSubstring keeps posts whose title or body contains the term,
// case-insensitively.
func RequireSubstring(term string) AcceptancePolicy {
	term = strings.ToLower(term)
	return func(post models.RedditPost, _ models.SearchRequest) bool {
		return strings.Contains(strings.ToLower(post.Title), term) ||
			strings.Contains(strings.ToLower(post.SelfText), term)
	}
}

// RequireRelevance keeps posts passing the concert relevance predicate.
func RequireRelevance() AcceptancePolicy {
	return func(post models.RedditPost, req models.SearchRequest) bool {
		return IsRelevantPost(post, req.Artist, req.Location)
	}
}

type searchPlan struct {
	subreddits []string
	queries    []string
	timeFilter string
	limit      int
	accept     AcceptancePolicy
}

// ConcertSearchService orchestrates Reddit searches across the concert
// subreddits and assembles the matched posts into report records.
type ConcertSearchService struct {
	reddit SubredditSearcher

	// DateLess orders the flattened date listing. The default compares
	// the raw date strings lexically; chronological ordering would need
	// per-pattern parsing, which extraction deliberately avoids.
	DateLess func(a, b string) bool
}

// NewConcertSearchService creates the search orchestrator. A nil
// searcher means the Reddit connection was never established; every
// call will return ErrRedditUnavailable.
func NewConcertSearchService(reddit SubredditSearcher) *ConcertSearchService {
	return &ConcertSearchService{
		reddit:   reddit,
		DateLess: func(a, b string) bool { return a < b },
	}
}

func (s *ConcertSearchService) planFor(req models.SearchRequest) searchPlan {
	switch req.Mode {
	case models.ModeSetlist:
		query := req.Artist + " setlist"
		if req.Venue != "" {
			query += " " + req.Venue
		}
		return searchPlan{
			subreddits: setlistSubreddits,
			queries:    []string{query},
			timeFilter: "month",
			limit:      5,
			accept:     RequireSubstring("setlist"),
		}
	case models.ModeEDM:
		parts := []string{req.Artist}
		if req.Festival != "" {
			parts = append(parts, req.Festival)
		}
		if req.Location != "" {
			parts = append(parts, req.Location)
		}
		return searchPlan{
			subreddits: edmSubreddits,
			queries:    []string{strings.Join(parts, " ")},
			timeFilter: "month",
			limit:      5,
			accept:     RequireRelevance(),
		}
	default:
		queries := GenerateSearchTerms(req.Artist, req.Location)
		if len(queries) > maxGeneralQueries {
			queries = queries[:maxGeneralQueries]
		}
		return searchPlan{
			subreddits: concertSubreddits,
			queries:    queries,
			timeFilter: "all",
			limit:      10,
			accept:     AcceptAll(),
		}
	}
}

// Search runs the mode-specific plan: every subreddit in the plan is
// queried sequentially, posts are deduplicated by ID within the call,
// filtered by the plan's acceptance policy and grouped by subreddit.
// Individual query failures are logged and skipped; subreddits with no
// accepted posts are omitted from the returned map.
func (s *ConcertSearchService) Search(ctx context.Context, req models.SearchRequest) (map[string][]models.ConcertPost, error) {
	if s.reddit == nil {
		return nil, ErrRedditUnavailable
	}

	// Normalize here so every caller (HTTP, MCP, tests) gets the same
	// queries; padded input must not leak into the provider calls.
	req.Artist = strings.TrimSpace(req.Artist)
	req.Location = strings.TrimSpace(req.Location)
	req.Venue = strings.TrimSpace(req.Venue)
	req.Festival = strings.TrimSpace(req.Festival)

	if req.Artist == "" {
		return nil, ErrArtistRequired
	}

	mode := req.Mode
	if mode == "" {
		mode = models.ModeGeneral
	}
	metrics.CountSearch(string(mode))

	plan := s.planFor(req)
	results := make(map[string][]models.ConcertPost)
	seen := make(map[string]bool)

	for _, subreddit := range plan.subreddits {
		var posts []models.ConcertPost

		for _, query := range plan.queries {
			found, err := s.reddit.SearchSubreddit(ctx, subreddit, query, plan.timeFilter, plan.limit)
			if err != nil {
				log.Printf("Error searching r/%s for %q: %v", subreddit, query, err)
				continue
			}

			for _, post := range found {
				if seen[post.ID] {
					continue
				}
				seen[post.ID] = true

				if !plan.accept(post, req) {
					continue
				}
				posts = append(posts, BuildConcertPost(post))
			}
		}

		if len(posts) > 0 {
			results[subreddit] = posts
		}
	}

	return results, nil
}

// ListConcertDates flattens the dates found by a general search into a
// single listing ordered by DateLess and capped at maxDateListings.
func (s *ConcertSearchService) ListConcertDates(ctx context.Context, req models.SearchRequest) ([]models.ConcertDate, error) {
	results, err := s.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	// Walk subreddits in a stable order so runs are reproducible.
	subreddits := make([]string, 0, len(results))
	for subreddit := range results {
		subreddits = append(subreddits, subreddit)
	}
	sort.Strings(subreddits)

	var dates []models.ConcertDate
	for _, subreddit := range subreddits {
		for _, post := range results[subreddit] {
			for _, date := range post.DatesFound {
				dates = append(dates, models.ConcertDate{
					Date:      date,
					Title:     post.Title,
					Subreddit: post.Subreddit,
					URL:       post.URL,
					Times:     post.TimesFound,
				})
			}
		}
	}

	sort.SliceStable(dates, func(i, j int) bool {
		return s.DateLess(dates[i].Date, dates[j].Date)
	})

	if len(dates) > maxDateListings {
		dates = dates[:maxDateListings]
	}

	return dates, nil
}
