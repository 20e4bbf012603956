// Package config loads settings from an optional YAML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ross1116/pokebattlesim/internal/ai"
)

type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type Data struct {
	PokeAPIURL string `yaml:"pokeapi_url"`
	RosterPath string `yaml:"roster_path"`
	Level      int    `yaml:"level"`
	TeamSize   int    `yaml:"team_size"`
}

type AI struct {
	Depth   int        `yaml:"depth"`
	Weights ai.Weights `yaml:"weights"`
}

type Config struct {
	Server      Server `yaml:"server"`
	LogLevel    string `yaml:"log_level"`
	DatabaseURL string `yaml:"database_url"`
	Data        Data   `yaml:"data"`
	AI          AI     `yaml:"ai"`
}

func Default() *Config {
	return &Config{
		Server:   Server{Host: "localhost", Port: 9090},
		LogLevel: "info",
		Data:     Data{Level: 50, TeamSize: 3},
		AI:       AI{Depth: 1, Weights: ai.DefaultWeights()},
	}
}

// Load starts from Default, applies the YAML file at path if one is given, then .env and
// the process environment. Only an explicitly named file has to exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("POKEBATTLE_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("POKEBATTLE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("POKEBATTLE_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("POKEBATTLE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("DB_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("POKEAPI_URL"); v != "" {
		c.Data.PokeAPIURL = v
	}
	if v := os.Getenv("POKEBATTLE_ROSTER"); v != "" {
		c.Data.RosterPath = v
	}
	return nil
}

var ErrWeightOrder = errors.New("ai weights must satisfy ko > hp > speed, type_advantage and |status|")

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Data.Level < 1 || c.Data.Level > 100 {
		return fmt.Errorf("level %d out of range 1..100", c.Data.Level)
	}
	if c.Data.TeamSize < 1 || c.Data.TeamSize > 6 {
		return fmt.Errorf("team size %d out of range 1..6", c.Data.TeamSize)
	}
	if c.AI.Depth < 1 {
		return fmt.Errorf("ai depth %d must be at least 1", c.AI.Depth)
	}

	w := c.AI.Weights
	if w.Status > 0 {
		return fmt.Errorf("status weight %v must not be positive", w.Status)
	}
	minor := max(w.Speed, w.TypeAdvantage, math.Abs(w.Status))
	if !(w.KO > w.HP && w.HP > minor) {
		return ErrWeightOrder
	}
	return nil
}
