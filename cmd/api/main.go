package main

import (
	"os"
	"time"

	"golotto/adapters/drawdata"
	"golotto/adapters/postgres"
	"golotto/adapters/report"
	"golotto/adapters/seedrng"
	"golotto/app"
	"golotto/internal"
	"golotto/internal/config"
	"golotto/ports"
	"golotto/ui"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	_ = godotenv.Load()

	log := internal.NewDefaultLogger()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error("failed to load config: %v", err)
		os.Exit(1)
	}

	source := drawdata.NewReader(cfg.Data, cfg.Strategy, log)
	sink := report.NewFileSink(cfg.Data, log)

	var archive ports.Archive
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			log.Error("failed to connect to archive database: %v", err)
			os.Exit(1)
		}
		archive = postgres.NewArchive(db)
	}

	pipeline := app.New(cfg, log, source, sink, archive, seedrng.New(time.Now().UnixNano()))

	addr := os.Getenv("API_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := ui.NewServer(cfg, pipeline, log).Run(addr); err != nil {
		log.Error("server stopped: %v", err)
		os.Exit(1)
	}
}
