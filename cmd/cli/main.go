package main

import (
	"errors"
	"log/slog"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		if !errors.Is(err, errQuiet) {
			slog.Error("cli failed to run", "error", err)
		}
		os.Exit(1)
	}
}
