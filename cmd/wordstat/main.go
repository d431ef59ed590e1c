package main

import (
	"context"
	"log/slog"
	"os"
)

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.RunContext(context.Background(), os.Args); err != nil {
		slog.Error("wordstat failed", "error", err)
		os.Exit(1)
	}
}
