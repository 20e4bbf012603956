package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ross1116/pokebattlesim/internal/ai"
	"github.com/ross1116/pokebattlesim/internal/battle"
	"github.com/ross1116/pokebattlesim/internal/config"
	"github.com/ross1116/pokebattlesim/internal/logging"
	"github.com/ross1116/pokebattlesim/internal/team"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	roster := flag.String("roster", "", "Roster file to use instead of random PokeAPI teams")
	depth := flag.Int("depth", 0, "AI search depth (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Setup("info", nil)
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.LogLevel, nil)
	if *roster != "" {
		cfg.Data.RosterPath = *roster
	}
	if *depth > 0 {
		cfg.AI.Depth = *depth
	}

	start := time.Now()
	source, err := team.NewSource(cfg.Data.RosterPath, cfg.Data.PokeAPIURL, cfg.Data.Level, cfg.Data.TeamSize)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up teams")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	player, opp, err := source.Teams(ctx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build teams")
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("teams ready")

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	b, err := battle.New(player, opp, battle.WithLogSink(func(line string) { fmt.Fprintln(out, line) }))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start battle")
	}
	bot := ai.New(battle.SideAI, cfg.AI.Weights)

	g := &game{battle: b, bot: bot, depth: cfg.AI.Depth, in: bufio.NewScanner(os.Stdin), out: out}
	if _, err := g.play(); err != nil {
		out.Flush()
		log.Fatal().Err(err).Msg("battle aborted")
	}
}
