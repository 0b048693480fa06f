package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	motorpress "github.com/motorpress/go-motorpress-api-wrapper"
	"github.com/motorpress/go-motorpress-api-wrapper/pkg/query"
	"github.com/motorpress/go-motorpress-api-wrapper/pkg/types"
)

func main() {
	// Route structured logs to stdout; adjust the level as needed.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	config := &motorpress.Config{
		AuthToken: os.Getenv("MOTORPRESS_TOKEN"), // optional
		UserAgent: "motorpress-example/1.0",
		Logger:    logger,
	}
	if base := os.Getenv("MOTORPRESS_API_URL"); base != "" {
		config.APIBaseURL = base
	}

	client, err := motorpress.NewClient(config)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	ctx := context.Background()

	// List the latest articles with the minimal field preset.
	articles, err := client.GetArticles(ctx, &types.ArticlesRequest{
		Limit:  10,
		Preset: string(query.PresetMinimal),
	})
	if err != nil {
		log.Fatalf("Failed to fetch articles: %v", err)
	}

	fmt.Printf("Fetched %d articles:\n", len(articles))
	for _, article := range articles {
		fmt.Printf("  %-40s %s\n", article.Title, article.MainImage)
	}

	// If a token was supplied, show who we are.
	if config.AuthToken != "" {
		user, err := client.GetCurrentUser(ctx)
		if err != nil {
			log.Printf("Failed to get user info: %v", err)
		} else if user != nil {
			fmt.Printf("Authenticated as: %s\n", user.Username)
		}
	}
}
