// Package logging constructs the structured logger shared by the daemon
// and the chain engine's embedders. It follows the teacher's setupLogger
// pattern: level parsed from config, format switches between JSON and a
// human-readable console writer.
package logging

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/cakechain/cakechain/internal/config"
)

// New builds a zerolog.Logger from cfg. An unparseable level falls back to
// info rather than failing startup over a typo'd config value.
func New(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
