package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"slices"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"

	"hotelops/config"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionDrop   = "drop"
	ActionStepUp = "step-up"

	sourceURL = "file://migrations/postgres"
)

var ErrUnknownAction = errors.New("unknown migration action")

// ConnectionString builds the migrate DSN for the write pool, honouring the database
// prefix and the custom migration table.
func ConnectionString(cfg *config.Config) string {
	write := cfg.DB.Postgres.Write

	name := write.Name
	if cfg.DB.Postgres.Prefix != "" {
		name = cfg.DB.Postgres.Prefix + name
	}

	query := url.Values{}
	query.Set("sslmode", write.SSLMode)

	if cfg.DB.Postgres.MigrationTable != "" {
		query.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(write.Username, write.Password),
		Host:     net.JoinHostPort(write.Host, write.Port),
		Path:     "/" + name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func Runner(cfg *config.Config, action string) error {
	if !slices.Contains([]string{ActionUp, ActionDown, ActionStepUp, ActionDrop}, action) {
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	mig, err := migrate.New(sourceURL, ConnectionString(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	var run func() error

	switch action {
	case ActionUp:
		run = mig.Up
	case ActionDown:
		run = func() error { return mig.Steps(-1) }
	case ActionStepUp:
		run = func() error { return mig.Steps(1) }
	case ActionDrop:
		run = mig.Down
	}

	if err := run(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migration completed successfully")

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, ActionUp)
}
