package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/shanebarringer/ultracoach-sub004/internal/config"
	"github.com/shanebarringer/ultracoach-sub004/internal/matching"
	"github.com/shanebarringer/ultracoach-sub004/internal/mcp"
	"github.com/shanebarringer/ultracoach-sub004/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	remoteURL := flag.String("remote", "", "base URL of a running UltraCoach server (skips direct database access)")
	flag.Parse()

	// Stdout carries the MCP stdio transport, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	matcher := matching.New(cfg.Matching.Options(), log)

	var ds mcp.DataSource
	if *remoteURL != "" {
		ds = mcp.NewHTTPClient(*remoteURL)
		log.Info("using remote data source", "url", *remoteURL)
	} else {
		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		ds = db
		log.Info("database connected")
	}

	s := mcp.New(ds, matcher, Version, log)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
