package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/ross1116/pokebattlesim/internal/config"
	"github.com/ross1116/pokebattlesim/internal/logging"
	"github.com/ross1116/pokebattlesim/internal/store"
	"github.com/ross1116/pokebattlesim/internal/team"
	"github.com/ross1116/pokebattlesim/server"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	host := flag.String("host", "", "Server host address (overrides config)")
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Setup("info", nil)
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	logging.Setup(cfg.LogLevel, nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, err := team.NewSource(cfg.Data.RosterPath, cfg.Data.PokeAPIURL, cfg.Data.Level, cfg.Data.TeamSize)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up teams")
	}

	var reports store.Repository = store.NewMemory()
	if cfg.DatabaseURL != "" {
		pg, err := store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open database")
		}
		defer pg.Close()
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to prepare database")
		}
		reports = pg
	}

	srv := server.New(&server.Config{
		Host:    cfg.Server.Host,
		Port:    strconv.Itoa(cfg.Server.Port),
		Depth:   cfg.AI.Depth,
		Weights: cfg.AI.Weights,
	}, source, reports)
	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
