package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"hotelops/config"
)

const (
	driverName         = "postgres"
	maxIdleConnections = 10
	maxOpenConnections = 10
)

// Connection holds separate pools for reads and writes. Both may point at the same server.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// endpoint is one side of the read/write split.
type endpoint struct {
	role     string
	host     string
	port     string
	username string
	password string
	database string
	sslMode  string
}

func (e endpoint) dsn() string {
	query := url.Values{}
	if e.sslMode != "" {
		query.Set("sslmode", e.sslMode)
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(e.username, e.password),
		Host:     net.JoinHostPort(e.host, e.port),
		Path:     "/" + e.database,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// New opens the read and write pools. It returns nil when no entity store is configured
// for postgres, so the in-memory deployment never dials a database.
func New(cfg *config.Config) *Connection {
	if cfg.Store.Driver != config.StoreDriverPostgres && cfg.GuestStoreDriver() != config.StoreDriverPostgres {
		log.Info().Str("driver", cfg.Store.Driver).Msg("postgres not required by the configured store driver")

		return nil
	}

	read, write := endpoints(cfg)
	pg := cfg.DB.Postgres

	return &Connection{
		Read:  connect(read, pg.MaxRetry, pg.RetryWaitTime),
		Write: connect(write, pg.MaxRetry, pg.RetryWaitTime),
	}
}

func endpoints(cfg *config.Config) (read, write endpoint) {
	pg := cfg.DB.Postgres

	read = endpoint{
		role:     "read",
		host:     pg.Read.Host,
		port:     pg.Read.Port,
		username: pg.Read.Username,
		password: pg.Read.Password,
		database: pg.Prefix + pg.Read.Name,
		sslMode:  pg.Read.SSLMode,
	}

	write = endpoint{
		role:     "write",
		host:     pg.Write.Host,
		port:     pg.Write.Port,
		username: pg.Write.Username,
		password: pg.Write.Password,
		database: pg.Prefix + pg.Write.Name,
		sslMode:  pg.Write.SSLMode,
	}

	return read, write
}

// connect dials e up to attempts times, sleeping waitSeconds between tries. It exits the
// process when every attempt fails.
func connect(e endpoint, attempts, waitSeconds int) *sqlx.DB {
	logger := log.With().
		Str("role", e.role).
		Str("host", e.host).
		Str("port", e.port).
		Str("database", e.database).
		Logger()

	for attempt := 1; attempt <= max(attempts, 1); attempt++ {
		db, err := sqlx.Connect(driverName, e.dsn())
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)

			logger.Info().Msg("postgres connected")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("postgres connect failed, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	logger.Fatal().Int("attempts", attempts).Msg("postgres connection retries exhausted")

	return nil
}
