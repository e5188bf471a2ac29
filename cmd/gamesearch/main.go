package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/cliffyan/go-game-search-mcp/cmd/gamesearch/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	commands.ExecuteContext(ctx)
}
