package logger

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/shared/constant"
)

// InitLogger wires the global zerolog logger. Production writes JSON lines, every other
// environment gets the human readable console writer.
func InitLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = zerolog.New(writer(cfg)).With().Timestamp().Str("app", cfg.App.Name).Logger()
	log.Trace().Msg("Zerolog initialized.")
}

func writer(cfg *config.Config) io.Writer {
	if cfg.Server.Env == constant.ServerEnvProduction {
		return os.Stdout
	}

	return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
}

// For returns a child of the global logger tagged with the owning component.
func For(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
