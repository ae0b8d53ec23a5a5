// Command geminicheck verifies a Gemini credential by issuing one minimal
// generateContent request.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"praxis-server/internal/providers/gemini"
)

func main() {
	var (
		keyFlag   string
		modelFlag string
		baseFlag  string
	)
	flag.StringVar(&keyFlag, "key", "", "Gemini API key (falls back to GEMINI_API_KEY)")
	flag.StringVar(&modelFlag, "model", "", "Model to probe (falls back to GEMINI_MODEL)")
	flag.StringVar(&baseFlag, "base-url", "", "API base URL (falls back to GEMINI_BASE_URL)")
	flag.Parse()

	_ = godotenv.Load()

	key := strings.TrimSpace(keyFlag)
	if key == "" {
		key = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	if key == "" {
		fmt.Fprintln(os.Stderr, "Gemini API key is required via -key or GEMINI_API_KEY")
		os.Exit(1)
	}
	model := modelFlag
	if model == "" {
		model = os.Getenv("GEMINI_MODEL")
	}
	baseURL := baseFlag
	if baseURL == "" {
		baseURL = os.Getenv("GEMINI_BASE_URL")
	}

	client, err := gemini.New(gemini.Options{APIKey: key, Model: model, BaseURL: baseURL})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build client: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "credential check failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Gemini credential OK (model %s)\n", client.Model())
}
