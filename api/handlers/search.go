// File: api/handlers/search.go

package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gigscout/gigscout/internal/cache"
	"github.com/gigscout/gigscout/internal/models"
	"github.com/gigscout/gigscout/internal/services"
)

const searchTimeout = 60 * time.Second

// SearchHandler serves the concert search endpoints.
type SearchHandler struct {
	Concerts *services.ConcertSearchService
	Reddit   *services.RedditService
	cache    *cache.Cache
}

// NewSearchHandler creates the handler with a short-lived response
// cache so repeated identical searches skip the Reddit round trips.
func NewSearchHandler(concerts *services.ConcertSearchService, reddit *services.RedditService) *SearchHandler {
	return &SearchHandler{
		Concerts: concerts,
		Reddit:   reddit,
		cache:    cache.New(500, 5*time.Minute),
	}
}

// HandleSearch handles POST /api/search (general concert search).
func (h *SearchHandler) HandleSearch(c *gin.Context) {
	h.runSearch(c, models.ModeGeneral)
}

// HandleSetlist handles POST /api/setlist.
func (h *SearchHandler) HandleSetlist(c *gin.Context) {
	h.runSearch(c, models.ModeSetlist)
}

// HandleEDM handles POST /api/edm.
func (h *SearchHandler) HandleEDM(c *gin.Context) {
	h.runSearch(c, models.ModeEDM)
}

func (h *SearchHandler) runSearch(c *gin.Context, mode models.SearchMode) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), searchTimeout)
	defer cancel()

	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid request payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	req.Artist = strings.TrimSpace(req.Artist)
	req.Location = strings.TrimSpace(req.Location)
	req.Venue = strings.TrimSpace(req.Venue)
	req.Festival = strings.TrimSpace(req.Festival)
	req.Mode = mode

	if req.Artist == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Artist name is required"})
		return
	}

	log.Printf("Search request: Artist='%s', Location='%s', Mode='%s'", req.Artist, req.Location, mode)

	results, err := h.search(ctx, req)
	if err != nil {
		log.Printf("Search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed: " + err.Error()})
		return
	}

	totalPosts := 0
	for _, posts := range results {
		totalPosts += len(posts)
	}

	resp := models.SearchResponse{
		Success:         true,
		Artist:          req.Artist,
		Location:        req.Location,
		Results:         results,
		TotalSubreddits: len(results),
		TotalPosts:      totalPosts,
	}
	switch mode {
	case models.ModeSetlist:
		resp.Venue = req.Venue
	case models.ModeEDM:
		resp.Festival = req.Festival
	}

	c.JSON(http.StatusOK, resp)
}

// search consults the response cache before hitting Reddit.
func (h *SearchHandler) search(ctx context.Context, req models.SearchRequest) (map[string][]models.ConcertPost, error) {
	key := cacheKey(req)
	if cached, ok := h.cache.Get(key); ok {
		log.Printf("Cache hit for %q", key)
		return cached.(map[string][]models.ConcertPost), nil
	}

	results, err := h.Concerts.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	h.cache.Set(key, results)
	return results, nil
}

func cacheKey(req models.SearchRequest) string {
	return strings.ToLower(strings.Join([]string{
		string(req.Mode), req.Artist, req.Location, req.Venue, req.Festival,
	}, "|"))
}

// HandleHealth handles GET /api/health.
func (h *SearchHandler) HandleHealth(c *gin.Context) {
	redditStatus := "disconnected"
	if h.Reddit.Ready() {
		redditStatus = "connected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"reddit_api": redditStatus,
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}
