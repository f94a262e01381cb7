// File: cmd/mcpserver/main.go

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gigscout/gigscout/internal/mcptools"
	"github.com/gigscout/gigscout/internal/services"
)

func main() {
	// Everything logged goes to stderr; stdout carries the MCP stream.
	log.SetOutput(os.Stderr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using environment variables")
	}

	redditService := services.NewRedditService(
		os.Getenv("REDDIT_CLIENT_ID"),
		os.Getenv("REDDIT_CLIENT_SECRET"),
	)

	var searcher services.SubredditSearcher
	if redditService.Ready() {
		verifyCtx, verifyCancel := context.WithTimeout(ctx, 15*time.Second)
		if err := redditService.Verify(verifyCtx); err != nil {
			log.Printf("Warning: %v", err)
		} else {
			log.Println("Reddit API connected successfully")
		}
		verifyCancel()
		searcher = redditService
	}

	concertService := services.NewConcertSearchService(searcher)

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "gigscout",
		Version: "1.0.0",
	}, nil)
	mcptools.Register(srv, concertService)

	log.Println("Concert MCP server listening on stdio")
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
