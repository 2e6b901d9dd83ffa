package main

import (
	"context"
	"os"
	"os/signal"

	charmlog "github.com/charmbracelet/log"
)

func main() {
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Prefix:          "midi2sheet",
		ReportTimestamp: true,
		Level:           charmlog.InfoLevel,
	})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = context.WithValue(ctx, charmlog.ContextKey, logger)

	Execute(ctx)
}
