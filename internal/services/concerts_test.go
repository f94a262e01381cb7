// File: internal/services/concerts_test.go

package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gigscout/gigscout/internal/models"
)

type searchCall struct {
	Subreddit  string
	Query      string
	TimeFilter string
	Limit      int
}

// fakeSearcher serves canned posts keyed by "subreddit|query" and
// records every call it receives.
type fakeSearcher struct {
	posts map[string][]models.RedditPost
	errs  map[string]error
	calls []searchCall
}

func (f *fakeSearcher) SearchSubreddit(_ context.Context, subreddit, query, timeFilter string, limit int) ([]models.RedditPost, error) {
	f.calls = append(f.calls, searchCall{subreddit, query, timeFilter, limit})

	key := subreddit + "|" + query
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	return f.posts[key], nil
}

func post(id, subreddit, title, body string) models.RedditPost {
	return models.RedditPost{
		ID:        id,
		Title:     title,
		SelfText:  body,
		Subreddit: subreddit,
		Author:    "someone",
		Score:     10,
		Permalink: "/r/" + subreddit + "/comments/" + id + "/",
	}
}

func TestSearchGeneralDeduplicates(t *testing.T) {
	a := post("a1", "edm", "Daft Punk tour", "")
	b := post("b1", "edm", "Daft Punk tickets", "")

	fake := &fakeSearcher{posts: map[string][]models.RedditPost{
		"edm|Daft Punk":         {a, b},
		"edm|Daft Punk concert": {a}, // same identifier resurfaces
	}}

	svc := NewConcertSearchService(fake)
	results, err := svc.Search(context.Background(), models.SearchRequest{
		Artist: "Daft Punk",
		Mode:   models.ModeGeneral,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("Expected one subreddit in results, got %d: %v", len(results), results)
	}
	if len(results["edm"]) != 2 {
		t.Errorf("Expected 2 deduplicated records, got %d", len(results["edm"]))
	}
}

func TestSearchGeneralPlan(t *testing.T) {
	fake := &fakeSearcher{}
	svc := NewConcertSearchService(fake)

	if _, err := svc.Search(context.Background(), models.SearchRequest{
		Artist:   "Daft Punk",
		Location: "Chicago",
		Mode:     models.ModeGeneral,
	}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 10 subreddits x first 3 generated terms
	if len(fake.calls) != 30 {
		t.Fatalf("Expected 30 provider calls, got %d", len(fake.calls))
	}

	first := fake.calls[0]
	if first.Query != "Daft Punk" || first.TimeFilter != "all" || first.Limit != 10 {
		t.Errorf("Unexpected first call: %+v", first)
	}
	if fake.calls[1].Query != "Daft Punk Chicago" || fake.calls[2].Query != "Chicago Daft Punk" {
		t.Errorf("Unexpected query order: %+v", fake.calls[:3])
	}
}

func TestSearchGeneralAcceptsEverything(t *testing.T) {
	// General mode applies no relevance filter; downstream consumers
	// are expected to do their own reading.
	offTopic := post("o1", "concert", "Completely unrelated rant", "no artist mentioned")

	fake := &fakeSearcher{posts: map[string][]models.RedditPost{
		"concert|Daft Punk": {offTopic},
	}}

	svc := NewConcertSearchService(fake)
	results, err := svc.Search(context.Background(), models.SearchRequest{Artist: "Daft Punk"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(results["concert"]) != 1 {
		t.Errorf("Expected unfiltered result to be kept, got %v", results)
	}
}

func TestSearchTrimsRequestFields(t *testing.T) {
	fake := &fakeSearcher{}
	svc := NewConcertSearchService(fake)

	if _, err := svc.Search(context.Background(), models.SearchRequest{
		Artist:   "  Daft Punk ",
		Location: " Chicago  ",
		Mode:     models.ModeGeneral,
	}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if fake.calls[0].Query != "Daft Punk" || fake.calls[1].Query != "Daft Punk Chicago" {
		t.Errorf("Expected trimmed queries, got %+v", fake.calls[:2])
	}

	setlistFake := &fakeSearcher{}
	setlistSvc := NewConcertSearchService(setlistFake)

	if _, err := setlistSvc.Search(context.Background(), models.SearchRequest{
		Artist: " Daft Punk ",
		Venue:  " Red Rocks ",
		Mode:   models.ModeSetlist,
	}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if setlistFake.calls[0].Query != "Daft Punk setlist Red Rocks" {
		t.Errorf("Expected trimmed setlist query, got %+v", setlistFake.calls[0])
	}
}

func TestSearchMissingArtist(t *testing.T) {
	fake := &fakeSearcher{}
	svc := NewConcertSearchService(fake)

	_, err := svc.Search(context.Background(), models.SearchRequest{Artist: "   "})
	if !errors.Is(err, ErrArtistRequired) {
		t.Fatalf("Expected ErrArtistRequired, got %v", err)
	}

	if len(fake.calls) != 0 {
		t.Errorf("Expected zero provider calls, got %d", len(fake.calls))
	}
}

func TestSearchRedditUnavailable(t *testing.T) {
	svc := NewConcertSearchService(nil)

	for i := 0; i < 3; i++ {
		_, err := svc.Search(context.Background(), models.SearchRequest{Artist: "Daft Punk"})
		if !errors.Is(err, ErrRedditUnavailable) {
			t.Fatalf("Expected ErrRedditUnavailable, got %v", err)
		}
	}

	if _, err := svc.ListConcertDates(context.Background(), models.SearchRequest{Artist: "Daft Punk"}); !errors.Is(err, ErrRedditUnavailable) {
		t.Errorf("Expected ErrRedditUnavailable from date listing, got %v", err)
	}
}

func TestSearchSetlistMode(t *testing.T) {
	withSetlist := post("s1", "setlist", "Daft Punk setlist from last night", "")
	withoutSetlist := post("s2", "setlist", "Daft Punk was amazing", "crowd went wild")

	fake := &fakeSearcher{posts: map[string][]models.RedditPost{
		"setlist|Daft Punk setlist Red Rocks": {withSetlist, withoutSetlist},
	}}

	svc := NewConcertSearchService(fake)
	results, err := svc.Search(context.Background(), models.SearchRequest{
		Artist: "Daft Punk",
		Venue:  "Red Rocks",
		Mode:   models.ModeSetlist,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 5 setlist subreddits x 1 query
	if len(fake.calls) != 5 {
		t.Fatalf("Expected 5 provider calls, got %d", len(fake.calls))
	}
	for _, call := range fake.calls {
		if call.Query != "Daft Punk setlist Red Rocks" || call.TimeFilter != "month" || call.Limit != 5 {
			t.Errorf("Unexpected call: %+v", call)
		}
	}

	if len(results["setlist"]) != 1 || results["setlist"][0].Title != "Daft Punk setlist from last night" {
		t.Errorf("Expected only the setlist-bearing post, got %v", results["setlist"])
	}
}

func TestSearchEDMModeFiltersByRelevance(t *testing.T) {
	relevant := post("e1", "edm", "Rezz announced for Ultra", "lineup is stacked")
	irrelevant := post("e2", "edm", "Anyone selling a spare?", "need one for my friend")

	fake := &fakeSearcher{posts: map[string][]models.RedditPost{
		"edm|Rezz Ultra": {relevant, irrelevant},
	}}

	svc := NewConcertSearchService(fake)
	results, err := svc.Search(context.Background(), models.SearchRequest{
		Artist:   "Rezz",
		Festival: "Ultra",
		Mode:     models.ModeEDM,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 6 EDM subreddits x 1 query
	if len(fake.calls) != 6 {
		t.Fatalf("Expected 6 provider calls, got %d", len(fake.calls))
	}

	if len(results["edm"]) != 1 || results["edm"][0].Title != "Rezz announced for Ultra" {
		t.Errorf("Expected only the relevant post, got %v", results["edm"])
	}
}

func TestSearchSkipsFailingQueries(t *testing.T) {
	good := post("g1", "edm", "Daft Punk tour", "")

	fake := &fakeSearcher{
		posts: map[string][]models.RedditPost{"edm|Daft Punk": {good}},
		errs:  map[string]error{},
	}
	for _, q := range []string{"Daft Punk", "Daft Punk concert", "concert Daft Punk"} {
		fake.errs["concert|"+q] = fmt.Errorf("rate limited")
	}

	svc := NewConcertSearchService(fake)
	results, err := svc.Search(context.Background(), models.SearchRequest{Artist: "Daft Punk"})
	if err != nil {
		t.Fatalf("Partial failures must not fail the search, got %v", err)
	}

	if len(results["edm"]) != 1 {
		t.Errorf("Expected results from the healthy subreddit, got %v", results)
	}
	if _, ok := results["concert"]; ok {
		t.Errorf("Failing subreddit should be absent from results")
	}
}

func TestSearchOmitsEmptySubreddits(t *testing.T) {
	fake := &fakeSearcher{posts: map[string][]models.RedditPost{
		"edm|Daft Punk": {post("p1", "edm", "Daft Punk tour", "")},
	}}

	svc := NewConcertSearchService(fake)
	results, err := svc.Search(context.Background(), models.SearchRequest{Artist: "Daft Punk"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(results) != 1 {
		t.Errorf("Subreddits without accepted posts must be omitted, got %v", results)
	}
}

func TestListConcertDates(t *testing.T) {
	fake := &fakeSearcher{posts: map[string][]models.RedditPost{
		"edm|Daft Punk": {
			post("d1", "edm", "Shows on 5/1/2024 and 1/2/2024", "doors at 8:00"),
		},
		"livemusic|Daft Punk": {
			post("d2", "livemusic", "Also playing March 3, 2024", ""),
		},
	}}

	svc := NewConcertSearchService(fake)
	dates, err := svc.ListConcertDates(context.Background(), models.SearchRequest{Artist: "Daft Punk"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(dates) != 3 {
		t.Fatalf("Expected 3 date entries, got %d: %v", len(dates), dates)
	}

	// Lexical ordering of the raw date strings: digits sort before letters.
	if dates[0].Date != "1/2/2024" || dates[1].Date != "5/1/2024" || dates[2].Date != "March 3, 2024" {
		t.Errorf("Unexpected ordering: %v", dates)
	}

	if dates[0].Subreddit != "edm" || len(dates[0].Times) != 2 {
		t.Errorf("Expected entry to carry its post context, got %+v", dates[0])
	}
}

func TestListConcertDatesCap(t *testing.T) {
	var body string
	for day := 10; day < 22; day++ {
		body += fmt.Sprintf("%d/1/2024 ", day)
	}

	fake := &fakeSearcher{posts: map[string][]models.RedditPost{
		"edm|Daft Punk": {post("cap1", "edm", "Full tour schedule", body)},
	}}

	svc := NewConcertSearchService(fake)
	dates, err := svc.ListConcertDates(context.Background(), models.SearchRequest{Artist: "Daft Punk"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(dates) != 10 {
		t.Errorf("Expected the listing capped at 10, got %d", len(dates))
	}
}

func TestListConcertDatesCustomComparator(t *testing.T) {
	fake := &fakeSearcher{posts: map[string][]models.RedditPost{
		"edm|Daft Punk": {post("c1", "edm", "1/2/2024 and 5/1/2024", "")},
	}}

	svc := NewConcertSearchService(fake)
	svc.DateLess = func(a, b string) bool { return a > b } // reversed

	dates, err := svc.ListConcertDates(context.Background(), models.SearchRequest{Artist: "Daft Punk"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if dates[0].Date != "5/1/2024" {
		t.Errorf("Expected reversed ordering, got %v", dates)
	}
}

func TestAcceptancePolicies(t *testing.T) {
	req := models.SearchRequest{Artist: "Rezz"}

	anyPost := post("x1", "pics", "nothing to do with music", "")
	if !AcceptAll()(anyPost, req) {
		t.Errorf("AcceptAll should keep everything")
	}

	setlistPost := post("x2", "concert", "REZZ Setlist thread", "")
	if !RequireSubstring("setlist")(setlistPost, req) {
		t.Errorf("RequireSubstring should match case-insensitively in the title")
	}
	if RequireSubstring("setlist")(anyPost, req) {
		t.Errorf("RequireSubstring should reject posts without the term")
	}

	relevantPost := post("x3", "edm", "Rezz tour dates", "")
	if !RequireRelevance()(relevantPost, req) {
		t.Errorf("RequireRelevance should keep relevant posts")
	}
	if RequireRelevance()(anyPost, req) {
		t.Errorf("RequireRelevance should reject posts missing the artist")
	}
}
