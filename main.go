package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/robmorgan/clockmaker/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := Run(ctx, os.Args[1:]); err != nil {
		logger.GetProjectLogger().Errorf("clockmaker: %v", err)
		os.Exit(1)
	}
}
