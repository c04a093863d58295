package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"tableflip.dev/diary/pkg/commands"
	"tableflip.dev/diary/pkg/commands/options"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.New().ExecuteContext(ctx); err != nil {
		stop()
		if options.IsReported(err) {
			os.Exit(1)
		}
		log.Fatalf("error during command execution: %v", err)
	}
}
