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
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/vidrecall"
	"github.com/poiesic/vidrecall/config"
	"github.com/poiesic/vidrecall/core"
	"github.com/poiesic/vidrecall/reembed"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "vidrecall",
		Usage: "Process video transcripts and answer questions about them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file",
				Value:   "config.yaml",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "process",
				Usage:  "Run the processing pipeline on the current source transcript",
				Action: processCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-wait",
						Usage: "Submit the job and return without waiting for it",
					},
				},
			},
			{
				Name:   "status",
				Usage:  "Show processing progress and the latest job record",
				Action: statusCommand,
			},
			{
				Name:      "ask",
				Usage:     "Answer a question about the processed transcript",
				ArgsUsage: "<question>",
				Action:    askCommand,
			},
			{
				Name:   "notes",
				Usage:  "Generate structured notes from the processed transcript",
				Action: notesCommand,
			},
			{
				Name:   "summarize",
				Usage:  "Generate a standalone summary of the processed transcript",
				Action: summarizeCommand,
			},
			{
				Name:   "watch",
				Usage:  "Watch the transcripts directory and process new transcripts",
				Action: watchCommand,
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate embeddings for the stored chunks",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks to embed in each batch",
						Value: 32,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N chunks",
						Value: 32,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed batches",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openService(c *cli.Context) (*vidrecall.Service, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	svc, err := vidrecall.NewService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize service: %w", err)
	}
	return svc, nil
}

func processCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	if c.Bool("no-wait") {
		if err := svc.Process(); err != nil {
			return fmt.Errorf("failed to submit job: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Job submitted")
		return nil
	}

	if err := svc.ProcessAndWait(c.Context); err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Processing complete")
	return nil
}

func statusCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	fmt.Printf("Status: %s\n", svc.Status(c.Context))

	job, err := svc.LatestJob(c.Context)
	if err != nil {
		return fmt.Errorf("failed to read job ledger: %w", err)
	}
	if job == nil {
		fmt.Println("No jobs recorded")
		return nil
	}

	fmt.Printf("Latest job: %d\n", job.Id)
	fmt.Printf("  Stage:   %s\n", job.Stage)
	fmt.Printf("  Started: %s\n", job.StartedAt.Format("2006-01-02 15:04:05"))
	if !job.CompletedAt.IsZero() {
		fmt.Printf("  Ended:   %s\n", job.CompletedAt.Format("2006-01-02 15:04:05"))
	}
	if job.Error != "" {
		fmt.Printf("  Error:   %s\n", job.Error)
	}
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("question is required")
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	result := svc.Ask(c.Context, question)
	fmt.Println(result.Answer)
	fmt.Fprintf(os.Stderr, "confidence=%.2f from_context=%t status=%s\n",
		result.Confidence, result.HasContext, result.Status)
	return nil
}

func notesCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	result := svc.Notes(c.Context)
	if result.Status != core.StatusSuccess {
		return fmt.Errorf("%s", result.Message)
	}
	fmt.Println(result.Notes)
	fmt.Fprintf(os.Stderr, "words=%d took=%.2fs\n", result.WordCount, result.ProcessingTime)
	return nil
}

func summarizeCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	summary, err := svc.Summarize(c.Context)
	if err != nil {
		return fmt.Errorf("summarization failed: %w", err)
	}
	fmt.Println(summary)
	return nil
}

func watchCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := svc.Watch(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Reembed(c.Context, reembedConfig, os.Stderr); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
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
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
