package main

import (
	"errors"
	"log/slog"
	"os"

	"voyage-booking/cmd"
)

func main() {
	if err := cmd.Start(); err != nil {
		if !errors.Is(err, cmd.ErrTerminated) {
			slog.Error("voyage-booking failed", "error", err)
		}
		os.Exit(1)
	}
}
