package repository

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=./mocks/store_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/infras/postgres"
)

// Record is implemented by every entity kept in a Store. Methods use value receivers so a
// record can be copied freely; Clone must deep-copy any slice, map or pointer it owns.
type Record[T any] interface {
	Identity() int64
	WithIdentity(id int64) T
	Clone() T
}

// Store is the persistence contract shared by every entity. Identities are assigned by the
// store, strictly increase and are never reused after a delete. Every returned record is a
// copy that the caller may mutate freely.
type Store[T Record[T]] interface {
	All(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Insert(ctx context.Context, record T) (T, error)
	// InsertBatch stores all records or none of them.
	InsertBatch(ctx context.Context, records []T) ([]T, error)
	// Modify runs fn against the current record and persists its result as one
	// read-modify-write. An error from fn aborts without writing.
	Modify(ctx context.Context, id int64, fn func(current T) (T, error)) (T, error)
	Delete(ctx context.Context, id int64) (T, error)
}

// New picks the store implementation for driver. Anything other than postgres falls back to
// the in-memory store.
func New[T Record[T]](cfg *config.Config, driver, entity, table string, db *postgres.Connection, otl otel.Otel) Store[T] {
	if driver == config.StoreDriverPostgres && db != nil {
		log.Info().Str("entity", entity).Str("table", table).Msg("Using postgres store")

		return NewPostgres[T](entity, table, db, otl)
	}

	if driver == config.StoreDriverPostgres {
		log.Warn().Str("entity", entity).Msg("Postgres store requested without a connection, falling back to memory")
	}

	latency := time.Duration(cfg.Store.LatencyMS) * time.Millisecond

	return NewMemory[T](entity, latency, otl)
}
