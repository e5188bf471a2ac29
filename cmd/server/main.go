package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cliffyan/go-game-search-mcp/internal/config"
	"github.com/cliffyan/go-game-search-mcp/internal/engine"
	"github.com/cliffyan/go-game-search-mcp/internal/logger"
	"github.com/cliffyan/go-game-search-mcp/internal/provider"
	"github.com/cliffyan/go-game-search-mcp/internal/server"
)

func main() {
	cfg := config.Load()
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		logger.Log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	logger.Log.Infof("🎮 Starting go-game-search MCP Server...")
	cfg.Print()

	manager := engine.NewManager(cfg, provider.Default())
	srv := server.New(cfg, manager)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Log.Infof("🛑 Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Log.Errorf("❌ Shutdown failed: %v", err)
		}
		engine.GetBrowserManager().Close()
	}()

	if err := srv.Start(); err != nil {
		logger.Log.Fatalf("❌ Server failed: %v", err)
	}
}
