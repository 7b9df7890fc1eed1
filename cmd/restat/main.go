package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/crimson-sun/restat/internal/config"
	"github.com/crimson-sun/restat/internal/logging"
	"github.com/crimson-sun/restat/internal/output"
	"github.com/crimson-sun/restat/internal/output/file"
	"github.com/crimson-sun/restat/internal/output/multi"
	"github.com/crimson-sun/restat/internal/output/sqlite"
	"github.com/crimson-sun/restat/internal/pipeline"
	"github.com/crimson-sun/restat/internal/report"
)

func main() {
	// Load environment variables before reading config.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}

	cfg := config.Load()
	logging.Init(logging.ParseLevel(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sinks := []output.Sink{file.New(cfg.OutputDir)}
	if cfg.SQLitePath != "" {
		sq, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open sqlite export: %v", err)
		}
		sinks = append(sinks, sq)
	}

	p := pipeline.New(cfg.Channels, cfg.InputDir, cfg.Pattern, multi.New(sinks...))
	defer p.Close()

	rep, err := p.Run(context.Background())
	if err != nil {
		log.Fatalf("restat: %v", err)
	}

	report.Render(os.Stdout, rep)
}
