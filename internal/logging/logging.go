// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	mu      sync.Mutex
	saved   zerolog.Level
	quieted int
)

// Setup points the global logger at a console writer on w (stderr when nil) and sets the
// global level. An unknown level falls back to info and is reported.
func Setup(level string, w io.Writer) zerolog.Level {
	if w == nil {
		w = os.Stderr
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level, using info")
	}
	return lvl
}

// Quiet disables all logging until the matching Restore. Calls nest.
func Quiet() {
	mu.Lock()
	defer mu.Unlock()
	if quieted == 0 {
		saved = zerolog.GlobalLevel()
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}
	quieted++
}

func Restore() {
	mu.Lock()
	defer mu.Unlock()
	if quieted == 0 {
		return
	}
	quieted--
	if quieted == 0 {
		zerolog.SetGlobalLevel(saved)
	}
}
