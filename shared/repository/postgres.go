package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"hotelops/infras/otel"
	"hotelops/infras/postgres"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
	"hotelops/shared/logger"
)

type document struct {
	ID      int64  `db:"id"`
	Payload []byte `db:"payload"`
}

type queryer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Postgres stores each record as a JSONB document keyed by a BIGSERIAL identity, so the
// sequence guarantees identities are never reused.
type Postgres[T Record[T]] struct {
	db     *postgres.Connection
	otel   otel.Otel
	table  string
	entity string
}

func NewPostgres[T Record[T]](entity, table string, db *postgres.Connection, otl otel.Otel) *Postgres[T] {
	return &Postgres[T]{
		db:     db,
		otel:   otl,
		table:  table,
		entity: entity,
	}
}

func (repo *Postgres[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, op))
}

func (repo *Postgres[T]) decode(doc document) (T, error) {
	var record T

	if err := json.Unmarshal(doc.Payload, &record); err != nil {
		return record, fmt.Errorf("failed to decode document (%s %d): %w", repo.entity, doc.ID, err)
	}

	return record.WithIdentity(doc.ID), nil
}

func (repo *Postgres[T]) All(ctx context.Context) (res []T, err error) {
	ctx, scope := repo.scope(ctx, "All")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := fmt.Sprintf("SELECT id, payload FROM %s ORDER BY id", repo.table)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	docs := []document{}
	if err = repo.db.Read.SelectContext(ctx, &docs, query); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get all data (%s): %w", repo.entity, err)
	}

	res = make([]T, 0, len(docs))
	for _, doc := range docs {
		record, err := repo.decode(doc)
		if err != nil {
			return nil, err
		}

		res = append(res, record)
	}

	return res, nil
}

func (repo *Postgres[T]) Get(ctx context.Context, id int64) (res T, err error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := fmt.Sprintf("SELECT id, payload FROM %s WHERE id = $1", repo.table)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var doc document

	err = repo.db.Read.GetContext(ctx, &doc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return res, failure.EntityNotFound(repo.entity, id)
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to get data (%s): %w", repo.entity, err)
	}

	return repo.decode(doc)
}

func (repo *Postgres[T]) insert(ctx context.Context, exec queryer, record T) (T, error) {
	var id int64

	sequence := fmt.Sprintf("SELECT nextval(pg_get_serial_sequence('%s', 'id'))", repo.table)
	if err := exec.GetContext(ctx, &id, sequence); err != nil {
		logger.ErrorWithStack(err)

		return record, fmt.Errorf("failed to reserve identity (%s): %w", repo.entity, err)
	}

	record = record.WithIdentity(id)

	payload, err := json.Marshal(record)
	if err != nil {
		return record, fmt.Errorf("failed to encode document (%s): %w", repo.entity, err)
	}

	query := fmt.Sprintf("INSERT INTO %s (id, payload) VALUES ($1, $2)", repo.table)
	if _, err = exec.ExecContext(ctx, query, id, payload); err != nil {
		logger.ErrorWithStack(err)

		return record, fmt.Errorf("failed to insert data (%s): %w", repo.entity, err)
	}

	return record, nil
}

func (repo *Postgres[T]) Insert(ctx context.Context, record T) (res T, err error) {
	ctx, scope := repo.scope(ctx, "Insert")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return repo.insert(ctx, repo.db.Write, record)
}

func (repo *Postgres[T]) InsertBatch(ctx context.Context, records []T) (res []T, err error) {
	ctx, scope := repo.scope(ctx, "InsertBatch")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = repo.withTx(ctx, func(tx *sqlx.Tx) error {
		res = make([]T, 0, len(records))

		for _, record := range records {
			inserted, err := repo.insert(ctx, tx, record)
			if err != nil {
				return err
			}

			res = append(res, inserted)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (repo *Postgres[T]) Modify(ctx context.Context, id int64, fn func(current T) (T, error)) (res T, err error) {
	ctx, scope := repo.scope(ctx, "Modify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = repo.withTx(ctx, func(tx *sqlx.Tx) error {
		var doc document

		query := fmt.Sprintf("SELECT id, payload FROM %s WHERE id = $1 FOR UPDATE", repo.table)

		err := tx.GetContext(ctx, &doc, query, id)
		if errors.Is(err, sql.ErrNoRows) {
			return failure.EntityNotFound(repo.entity, id)
		}

		if err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to lock data (%s): %w", repo.entity, err)
		}

		current, err := repo.decode(doc)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		next = next.WithIdentity(id)

		payload, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to encode document (%s): %w", repo.entity, err)
		}

		update := fmt.Sprintf("UPDATE %s SET payload = $1, updated_at = now() WHERE id = $2", repo.table)
		if _, err = tx.ExecContext(ctx, update, payload, id); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to update data (%s): %w", repo.entity, err)
		}

		res = next

		return nil
	})

	return res, err
}

func (repo *Postgres[T]) Delete(ctx context.Context, id int64) (res T, err error) {
	ctx, scope := repo.scope(ctx, "Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 RETURNING id, payload", repo.table)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var doc document

	err = repo.db.Write.GetContext(ctx, &doc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return res, failure.EntityNotFound(repo.entity, id)
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to delete data (%s): %w", repo.entity, err)
	}

	return repo.decode(doc)
}

func (repo *Postgres[T]) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", repo.entity, err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", repo.entity, err)
	}

	return nil
}
