// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/voyant"
	"github.com/poiesic/voyant/ai"
	"github.com/poiesic/voyant/graph/neo4j"
	"github.com/poiesic/voyant/index/pinecone"
	"github.com/poiesic/voyant/retrieval"
)

func main() {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "voyant",
		Usage: "Hybrid travel assistant combining vector search and knowledge graph retrieval",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "openai-token",
				Usage:   "OpenAI API token",
				EnvVars: []string{"OPENAI_API_KEY"},
			},
			&cli.StringFlag{
				Name:  "openai-host",
				Usage: "OpenAI-compatible service host URL",
				Value: "https://api.openai.com/v1",
			},
			&cli.StringFlag{
				Name:    "pinecone-key",
				Usage:   "Pinecone API key",
				EnvVars: []string{"PINECONE_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "pinecone-index",
				Usage:   "Pinecone index name",
				EnvVars: []string{"PINECONE_INDEX_NAME"},
			},
			&cli.StringFlag{
				Name:    "neo4j-uri",
				Usage:   "Neo4j connection URI",
				EnvVars: []string{"NEO4J_URI"},
			},
			&cli.StringFlag{
				Name:    "neo4j-user",
				Usage:   "Neo4j username",
				EnvVars: []string{"NEO4J_USER"},
				Value:   "neo4j",
			},
			&cli.StringFlag{
				Name:    "neo4j-password",
				Usage:   "Neo4j password",
				EnvVars: []string{"NEO4J_PASSWORD"},
			},
			&cli.StringFlag{
				Name:  "cache",
				Usage: "Directory for the persistent embedding cache (empty for in-memory)",
			},
			&cli.IntFlag{
				Name:  "top-k",
				Usage: "Vector matches to retrieve per query",
				Value: retrieval.DefaultTopK,
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Answer a single travel question with grounded generation",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "stream",
						Usage: "Stream the answer token by token",
						Value: true,
					},
				},
			},
			{
				Name:      "plan",
				Usage:     "Produce a structured itinerary via the multi-stage agent pipeline",
				ArgsUsage: "<request>",
				Action:    planCommand,
			},
			{
				Name:   "chat",
				Usage:  "Interactive question loop with per-query metrics",
				Action: chatCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", levelStr)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

func newAssistant(c *cli.Context) (*voyant.Assistant, error) {
	cfg := voyant.Config{
		AI: ai.NewConfig(
			ai.WithHost(c.String("openai-host")),
			ai.WithToken(c.String("openai-token")),
		),
		Pinecone: pinecone.Config{
			APIKey:    c.String("pinecone-key"),
			IndexName: c.String("pinecone-index"),
		},
		Neo4j: neo4j.Config{
			URI:      c.String("neo4j-uri"),
			Username: c.String("neo4j-user"),
			Password: c.String("neo4j-password"),
		},
		CachePath: c.String("cache"),
		TopK:      c.Int("top-k"),
	}

	return voyant.New(c.Context, cfg)
}

func askCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("question is required")
	}

	assistant, err := newAssistant(c)
	if err != nil {
		return fmt.Errorf("failed to assemble assistant: %w", err)
	}
	defer assistant.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return answerQuery(ctx, assistant, query, c.Bool("stream"))
}

func planCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("request is required")
	}

	assistant, err := newAssistant(c)
	if err != nil {
		return fmt.Errorf("failed to assemble assistant: %w", err)
	}
	defer assistant.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := assistant.Plan(ctx, query)
	if err != nil {
		return err
	}

	fmt.Println(report.Response)
	fmt.Println()
	fmt.Printf("Quality score: %d/100 (valid: %t)\n", report.Validation.Score, report.Validation.IsValid)
	for _, stage := range report.StageLogs {
		marker := ""
		if stage.FallbackApplied {
			marker = " [fallback]"
		}
		fmt.Printf("  %-8s %s (%v)%s\n", stage.Stage, stage.Detail, stage.Elapsed, marker)
	}
	return nil
}

func chatCommand(c *cli.Context) error {
	assistant, err := newAssistant(c)
	if err != nil {
		return fmt.Errorf("failed to assemble assistant: %w", err)
	}
	defer assistant.Close()

	fmt.Println("voyant travel assistant")
	fmt.Println("Type your question, or 'exit' to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Your travel question: ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}

		// Ctrl-C aborts the in-flight query, not the whole session.
		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		if err := answerQuery(ctx, assistant, query, true); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		stop()
		fmt.Println()
	}

	fmt.Println("Thank you for using the travel assistant!")
	return scanner.Err()
}

func answerQuery(ctx context.Context, assistant *voyant.Assistant, query string, stream bool) error {
	result, err := assistant.Answer(ctx, query, stream)
	if err != nil {
		return err
	}

	if result.Stream != nil {
		for token := range result.Stream.Tokens() {
			fmt.Print(token)
		}
		fmt.Println()
		if err := result.Stream.Err(); err != nil {
			return err
		}
	} else {
		fmt.Println(result.Answer)
	}

	fmt.Println()
	fmt.Println("--- metrics ---")
	fmt.Printf("embedding: %v\n", result.Timings.Embedding)
	fmt.Printf("vector:    %v\n", result.Timings.Vector)
	fmt.Printf("graph:     %v\n", result.Timings.Graph)
	fmt.Printf("fusion:    %v\n", result.Timings.Fusion)
	fmt.Printf("generate:  %v\n", result.Timings.Generation)
	fmt.Printf("total:     %v\n", result.Timings.Total)
	fmt.Printf("evidence:  %d vector matches, %d graph facts\n",
		len(result.Evidence.Matches), len(result.Evidence.Facts))
	return nil
}
