// File: internal/services/reddit.go

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gigscout/gigscout/internal/metrics"
	"github.com/gigscout/gigscout/internal/models"
)

const (
	redditOAuthHost  = "https://oauth.reddit.com"
	redditPublicHost = "https://www.reddit.com"

	defaultUserAgent = "ConcertScoutBot/1.0 by gigscout"
)

// SubredditSearcher is the slice of the Reddit client the concert
// search service depends on.
type SubredditSearcher interface {
	SearchSubreddit(ctx context.Context, subreddit, query, timeFilter string, limit int) ([]models.RedditPost, error)
}

// RedditService handles interactions with the Reddit API
type RedditService struct {
	userAgent  string
	httpClient *http.Client
	auth       *redditAuth // nil when no credentials were configured
}

// NewRedditService creates a new Reddit service instance. Credentials
// are optional; without them searches go through the public JSON
// endpoints, which are heavily rate limited.
func NewRedditService(clientID, clientSecret string) *RedditService {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	s := &RedditService{
		userAgent:  defaultUserAgent,
		httpClient: httpClient,
	}

	if clientID != "" && clientSecret != "" {
		s.auth = newRedditAuth(clientID, clientSecret, s.userAgent, httpClient)
	} else {
		log.Println("Warning: Reddit credentials not set, falling back to public endpoints")
	}

	return s
}

// Ready reports whether the service was configured with credentials.
func (s *RedditService) Ready() bool {
	return s != nil && s.auth != nil
}

// Verify performs a startup connectivity self-test by fetching an
// access token. Failures are reported, not fatal.
func (s *RedditService) Verify(ctx context.Context) error {
	if s.auth == nil {
		return fmt.Errorf("reddit credentials not configured")
	}
	if _, err := s.auth.Token(ctx); err != nil {
		return fmt.Errorf("reddit connectivity check failed: %w", err)
	}
	return nil
}

// SearchSubreddit runs a single search restricted to one subreddit and
// returns the matching posts. Comments and subreddit listings returned
// by the API are skipped; only submissions (t3) count.
func (s *RedditService) SearchSubreddit(ctx context.Context, subreddit, query, timeFilter string, limit int) ([]models.RedditPost, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("restrict_sr", "1")
	params.Set("sort", "relevance")
	params.Set("t", timeFilter)
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("raw_json", "1")

	host := redditPublicHost
	token := ""
	if s.auth != nil {
		t, err := s.auth.Token(ctx)
		if err != nil {
			log.Printf("Reddit auth failed, using public endpoint: %v", err)
		} else {
			host = redditOAuthHost
			token = t
		}
	}

	searchURL := fmt.Sprintf("%s/r/%s/search.json?%s", host, url.PathEscape(subreddit), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating search request: %w", err)
	}

	req.Header.Set("User-Agent", s.userAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	metrics.ObserveProviderCall(subreddit, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("error executing search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error response from Reddit API: %s", resp.Status)
	}

	return parseListing(body)
}

// parseListing decodes a Reddit listing response into posts.
func parseListing(raw []byte) ([]models.RedditPost, error) {
	var listing struct {
		Data struct {
			Children []struct {
				Kind string          `json:"kind"`
				Data json.RawMessage `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}

	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil, fmt.Errorf("error parsing Reddit response: %w", err)
	}

	var posts []models.RedditPost
	for _, child := range listing.Data.Children {
		if child.Kind != "t3" {
			continue
		}

		var post struct {
			ID         string  `json:"id"`
			Title      string  `json:"title"`
			Selftext   string  `json:"selftext"`
			Subreddit  string  `json:"subreddit"`
			Author     string  `json:"author"`
			Score      int     `json:"score"`
			CreatedUTC float64 `json:"created_utc"`
			Permalink  string  `json:"permalink"`
		}
		if err := json.Unmarshal(child.Data, &post); err != nil {
			log.Printf("Error parsing post data: %v", err)
			continue
		}
		if post.ID == "" || post.Title == "" {
			continue
		}

		author := post.Author
		if author == "[deleted]" {
			// Normalize: an absent author is represented as empty here
			// and rendered as the sentinel in the report record.
			author = ""
		}

		posts = append(posts, models.RedditPost{
			ID:         post.ID,
			Title:      post.Title,
			SelfText:   post.Selftext,
			Subreddit:  post.Subreddit,
			Author:     author,
			Score:      post.Score,
			CreatedUTC: int64(post.CreatedUTC),
			Permalink:  post.Permalink,
		})
	}

	return posts, nil
}
