// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dkeye/Relay/internal/config"
)

// Init installs the console logger. Called before config is loaded.
func Init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Setup applies the logging part of cfg. When a log file is configured,
// JSON lines also go to a rotating file; the returned closer releases it.
func Setup(cfg *config.Config) io.Closer {
	SetLevel(cfg.LogLevel)
	console := zerolog.ConsoleWriter{Out: os.Stderr}
	if cfg.LogFile == "" {
		log.Logger = zerolog.New(console).With().Timestamp().Logger()
		return nopCloser{}
	}
	file := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
		LocalTime:  true,
	}
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(console, file)).With().Timestamp().Logger()
	log.Info().Str("module", "logging").Str("file", cfg.LogFile).Msg("file logging enabled")
	return file
}

// SetLevel changes the global level; unknown names fall back to info.
func SetLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		log.Warn().Str("module", "logging").Str("level", name).Msg("unknown log level, using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	return lvl
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
