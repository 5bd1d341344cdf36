// newswatch queries the news collaborator directly and writes the returned
// data points to a file, useful for inspecting collaborator output without a
// running server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/wayfare-app/wayfare/internal/agents"
)

const envNewsURL = "WAYFARE_COLLABORATOR_NEWS_URL"

func main() {
	var (
		newsURL     = flag.String("url", "", "News collaborator base URL")
		origin      = flag.String("origin", "", "Origin country")
		destination = flag.String("destination", "", "Destination country")
		sinceDays   = flag.Int("since-days", 7, "Article lookback window in days")
		maxArticles = flag.Int("max-articles", 20, "Maximum articles to retrieve")
		useLLM      = flag.Bool("use-llm", true, "Request LLM analysis of articles")
		timeout     = flag.Duration("timeout", time.Minute, "Request timeout")
		out         = flag.String("out", "", "Output file (default stdout)")
	)
	flag.Parse()

	if *newsURL == "" {
		*newsURL = os.Getenv(envNewsURL)
	}
	if *newsURL == "" {
		log.Fatal("news collaborator URL required (-url or WAYFARE_COLLABORATOR_NEWS_URL)")
	}
	if *origin == "" || *destination == "" {
		log.Fatal("both -origin and -destination are required")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	client := agents.NewNewsClient(*newsURL, *timeout, logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := client.Scan(ctx, agents.NewsRequest{
		Origin:      *origin,
		Destination: *destination,
		SinceDays:   *sinceDays,
		MaxArticles: *maxArticles,
		UseLLM:      *useLLM,
	})
	if err != nil {
		log.Fatalf("news scan failed: %v", err)
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode result: %v", err)
	}

	if *out == "" {
		fmt.Println(string(output))
		return
	}

	if err := os.WriteFile(*out, output, 0644); err != nil {
		log.Fatalf("failed to write %s: %v", *out, err)
	}
	fmt.Printf("wrote %d data points to %s\n", len(result.DataPoints), *out)
}
