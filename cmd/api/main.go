package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/metinatakli/cinema-booking-engine/internal/app"
	"github.com/metinatakli/cinema-booking-engine/internal/config"
	"github.com/metinatakli/cinema-booking-engine/internal/vcs"
)

func main() {
	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if cfg.DisplayVersion {
		fmt.Printf("Version:\t%s\n", vcs.Version())
		os.Exit(0)
	}

	err = app.Run(cfg)
	if err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
