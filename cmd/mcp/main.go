package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	mcpadapter "github.com/worawit/lawgraph/internal/adapters/mcp"
	"github.com/worawit/lawgraph/internal/bootstrap"
	"github.com/worawit/lawgraph/internal/config"
	"github.com/worawit/lawgraph/internal/observability/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := logging.Init("mcp", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		app.Close(closeCtx)
	}()

	srv := mcpadapter.NewServer(app.SearchUC, app.AskUC, app.FactsUC, cfg.DefaultTopK)
	logger.Info("mcp server ready on stdio")
	if err := server.ServeStdio(srv.MCPServer()); err != nil {
		log.Fatalf("mcp server error: %v", err)
	}
}
