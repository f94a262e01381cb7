// File: internal/mcptools/tools.go

package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gigscout/gigscout/internal/models"
	"github.com/gigscout/gigscout/internal/services"
	"github.com/gigscout/gigscout/internal/utils"
)

const previewLength = 200

type concertTools struct {
	svc *services.ConcertSearchService
}

// Register registers the four concert tools on an MCP server.
func Register(srv *mcp.Server, svc *services.ConcertSearchService) {
	t := &concertTools{svc: svc}
	t.registerSearchTool(srv)
	t.registerSetlistTool(srv)
	t.registerEDMTool(srv)
	t.registerDatesTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func artistProperty() map[string]any {
	return map[string]any{"type": "string", "description": "Artist or band name"}
}

// --- search_concerts ---

type searchReq struct {
	Artist    string `json:"artist"`
	Location  string `json:"location"`
	DateRange string `json:"date_range"`
}

func (t *concertTools) registerSearchTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "search_concerts",
		Description: "Search Reddit concert communities for upcoming shows by an artist, optionally near a location.",
		InputSchema: inputSchema(map[string]any{
			"artist":     artistProperty(),
			"location":   map[string]any{"type": "string", "description": "City or region to filter by"},
			"date_range": map[string]any{"type": "string", "description": "How far back to look, in days"},
		}, []string{"artist"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r searchReq
		if err := unmarshalArgs(req, &r); err != nil {
			return errorResult(err), nil
		}

		results, err := t.svc.Search(ctx, models.SearchRequest{
			Artist:    r.Artist,
			Location:  r.Location,
			DateRange: r.DateRange,
			Mode:      models.ModeGeneral,
		})
		if err != nil {
			return errorResult(err), nil
		}

		header := fmt.Sprintf("Concert search results for %s", r.Artist)
		if r.Location != "" {
			header += " near " + r.Location
		}
		return textResult(renderGrouped(header, results, 3)), nil
	})
}

// --- get_setlist ---

type setlistReq struct {
	Artist string `json:"artist"`
	Venue  string `json:"venue"`
}

func (t *concertTools) registerSetlistTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "get_setlist",
		Description: "Look up recent setlist posts for an artist, optionally at a specific venue.",
		InputSchema: inputSchema(map[string]any{
			"artist": artistProperty(),
			"venue":  map[string]any{"type": "string", "description": "Venue name"},
		}, []string{"artist"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r setlistReq
		if err := unmarshalArgs(req, &r); err != nil {
			return errorResult(err), nil
		}

		results, err := t.svc.Search(ctx, models.SearchRequest{
			Artist: r.Artist,
			Venue:  r.Venue,
			Mode:   models.ModeSetlist,
		})
		if err != nil {
			return errorResult(err), nil
		}

		header := fmt.Sprintf("Setlist posts for %s", r.Artist)
		if r.Venue != "" {
			header += " at " + r.Venue
		}
		return textResult(renderGrouped(header, results, 0)), nil
	})
}

// --- search_edm_events ---

type edmReq struct {
	Artist   string `json:"artist"`
	Festival string `json:"festival"`
	Location string `json:"location"`
}

func (t *concertTools) registerEDMTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "search_edm_events",
		Description: "Search EDM communities for festival and event posts mentioning an artist.",
		InputSchema: inputSchema(map[string]any{
			"artist":   artistProperty(),
			"festival": map[string]any{"type": "string", "description": "Festival name (e.g. Ultra, EDC)"},
			"location": map[string]any{"type": "string", "description": "City or region to filter by"},
		}, []string{"artist"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r edmReq
		if err := unmarshalArgs(req, &r); err != nil {
			return errorResult(err), nil
		}

		results, err := t.svc.Search(ctx, models.SearchRequest{
			Artist:   r.Artist,
			Festival: r.Festival,
			Location: r.Location,
			Mode:     models.ModeEDM,
		})
		if err != nil {
			return errorResult(err), nil
		}

		header := fmt.Sprintf("EDM event posts for %s", r.Artist)
		if r.Festival != "" {
			header += " at " + r.Festival
		}
		return textResult(renderGrouped(header, results, 0)), nil
	})
}

// --- extract_concert_dates ---

type datesReq struct {
	Artist   string `json:"artist"`
	Location string `json:"location"`
}

func (t *concertTools) registerDatesTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "extract_concert_dates",
		Description: "Extract concert dates mentioned in Reddit posts about an artist.",
		InputSchema: inputSchema(map[string]any{
			"artist":   artistProperty(),
			"location": map[string]any{"type": "string", "description": "City or region to filter by"},
		}, []string{"artist"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r datesReq
		if err := unmarshalArgs(req, &r); err != nil {
			return errorResult(err), nil
		}

		dates, err := t.svc.ListConcertDates(ctx, models.SearchRequest{
			Artist:   r.Artist,
			Location: r.Location,
			Mode:     models.ModeGeneral,
		})
		if err != nil {
			return errorResult(err), nil
		}

		return textResult(renderDates(r.Artist, dates)), nil
	})
}

// --- helpers ---

func unmarshalArgs(req *mcp.CallToolRequest, v any) error {
	if err := json.Unmarshal(req.Params.Arguments, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func errorResult(err error) *mcp.CallToolResult {
	var res mcp.CallToolResult
	res.SetError(err)
	return &res
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// renderGrouped renders a result map as a subreddit-grouped text block.
// perSub caps the posts shown per subreddit; 0 shows everything.
func renderGrouped(header string, results map[string][]models.ConcertPost, perSub int) string {
	if len(results) == 0 {
		return header + ":\n\nNo matching posts found."
	}

	subreddits := make([]string, 0, len(results))
	for subreddit := range results {
		subreddits = append(subreddits, subreddit)
	}
	sort.Strings(subreddits)

	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", header)

	for _, subreddit := range subreddits {
		posts := results[subreddit]
		fmt.Fprintf(&b, "\nr/%s (%d posts):\n", subreddit, len(posts))

		shown := posts
		if perSub > 0 && len(shown) > perSub {
			shown = shown[:perSub]
		}

		for i, post := range shown {
			fmt.Fprintf(&b, "%d. %s\n", i+1, post.Title)
			fmt.Fprintf(&b, "   Score: %s | Posted: %s | By: %s\n",
				utils.FormatNumber(post.Score), formatCreated(post.CreatedUTC), post.Author)
			if len(post.DatesFound) > 0 {
				fmt.Fprintf(&b, "   Dates: %s\n", strings.Join(post.DatesFound, ", "))
			}
			if len(post.TimesFound) > 0 {
				fmt.Fprintf(&b, "   Times: %s\n", strings.Join(post.TimesFound, ", "))
			}
			if post.Text != "" {
				fmt.Fprintf(&b, "   %s\n", utils.TruncateWithEllipsis(post.Text, previewLength))
			}
			fmt.Fprintf(&b, "   %s\n", post.URL)
		}
	}

	return b.String()
}

func renderDates(artist string, dates []models.ConcertDate) string {
	if len(dates) == 0 {
		return fmt.Sprintf("No concert dates found for %s.", artist)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Concert dates mentioned for %s:\n", artist)

	for i, d := range dates {
		fmt.Fprintf(&b, "\n%d. %s - %s (r/%s)\n", i+1, d.Date, d.Title, d.Subreddit)
		if len(d.Times) > 0 {
			fmt.Fprintf(&b, "   Times: %s\n", strings.Join(d.Times, ", "))
		}
		fmt.Fprintf(&b, "   %s\n", d.URL)
	}

	return b.String()
}

func formatCreated(created string) string {
	t, err := time.ParseInLocation("2006-01-02T15:04:05", created, time.Local)
	if err != nil {
		return created
	}
	return utils.FormatTimeAgo(t)
}
