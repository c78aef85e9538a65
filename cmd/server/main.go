// Command server serves the canonical tourism and exchange-rate tables over
// HTTP.
package main

import (
	"log/slog"
	"os"

	"tourismfx/internal/app"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
