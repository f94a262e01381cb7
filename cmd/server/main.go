// File: cmd/server/main.go

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gigscout/gigscout/api/handlers"
	"github.com/gigscout/gigscout/internal/metrics"
	"github.com/gigscout/gigscout/internal/services"
	"github.com/joho/godotenv"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutdown signal received")
		cancel()
	}()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using environment variables")
	}

	port := getEnvWithDefault("PORT", "8080")
	redditClientID := os.Getenv("REDDIT_CLIENT_ID")
	redditClientSecret := os.Getenv("REDDIT_CLIENT_SECRET")

	if redditClientID == "" || redditClientSecret == "" {
		log.Println("Warning: Reddit API credentials not set. Set REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET environment variables")
	}

	redditService := services.NewRedditService(redditClientID, redditClientSecret)

	// Connectivity self-test; a failure is logged, not fatal, so the
	// health endpoint can still report the state.
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
	searchHandler := handlers.NewSearchHandler(concertService, redditService)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.POST("/search", searchHandler.HandleSearch)
		api.POST("/setlist", searchHandler.HandleSetlist)
		api.POST("/edm", searchHandler.HandleEDM)
		api.GET("/health", searchHandler.HandleHealth)
	}
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Server starting on port %s\n", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	log.Println("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// getEnvWithDefault returns the value of an environment variable or a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
