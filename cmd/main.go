package main

import (
	"context"
	"os"

	"github.com/desertthunder/ypc/internal/shared"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; variables already in the environment win.
	_ = godotenv.Load()

	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := runner.app().Run(context.Background(), os.Args); err != nil {
		logger.Fatal("ypc failed", "error", err)
	}
}
