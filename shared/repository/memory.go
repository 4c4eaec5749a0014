package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"hotelops/infras/otel"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
)

// Memory keeps records in process memory in insertion order.
type Memory[T Record[T]] struct {
	mu      sync.RWMutex
	records []T
	nextID  int64
	entity  string
	latency time.Duration
	otel    otel.Otel
}

// NewMemory builds an empty store, optionally preloaded with seed records. Seeds keep their
// identity when set; the identity counter resumes after the highest one.
func NewMemory[T Record[T]](entity string, latency time.Duration, otl otel.Otel, seed ...T) *Memory[T] {
	store := &Memory[T]{
		records: make([]T, 0, len(seed)),
		nextID:  1,
		entity:  entity,
		latency: latency,
		otel:    otl,
	}

	for _, record := range seed {
		if record.Identity() >= store.nextID {
			store.nextID = record.Identity() + 1
		}
	}

	for _, record := range seed {
		if record.Identity() <= 0 {
			record = record.WithIdentity(store.nextID)
			store.nextID++
		}

		store.records = append(store.records, record.Clone())
	}

	return store
}

// pause simulates the round trip of a remote store.
func (m *Memory[T]) pause(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err() //nolint:wrapcheck
	}

	timer := time.NewTimer(m.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck
	case <-timer.C:
		return nil
	}
}

func (m *Memory[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return m.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, m.entity, op))
}

func (m *Memory[T]) indexOf(id int64) int {
	return slices.IndexFunc(m.records, func(record T) bool {
		return record.Identity() == id
	})
}

func (m *Memory[T]) All(ctx context.Context) (res []T, err error) {
	ctx, scope := m.scope(ctx, "All")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = m.pause(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	res = make([]T, len(m.records))
	for i, record := range m.records {
		res[i] = record.Clone()
	}

	return res, nil
}

func (m *Memory[T]) Get(ctx context.Context, id int64) (res T, err error) {
	ctx, scope := m.scope(ctx, "Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = m.pause(ctx); err != nil {
		return res, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return res, failure.EntityNotFound(m.entity, id)
	}

	return m.records[idx].Clone(), nil
}

func (m *Memory[T]) Insert(ctx context.Context, record T) (res T, err error) {
	ctx, scope := m.scope(ctx, "Insert")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = m.pause(ctx); err != nil {
		return res, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	res = record.WithIdentity(m.nextID)
	m.nextID++
	m.records = append(m.records, res.Clone())

	log.Debug().Str("entity", m.entity).Int64("id", res.Identity()).Msg("record inserted")

	return res, nil
}

func (m *Memory[T]) InsertBatch(ctx context.Context, records []T) (res []T, err error) {
	ctx, scope := m.scope(ctx, "InsertBatch")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = m.pause(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	res = make([]T, len(records))
	for i, record := range records {
		res[i] = record.WithIdentity(m.nextID + int64(i))
	}

	for _, record := range res {
		m.records = append(m.records, record.Clone())
	}

	m.nextID += int64(len(records))

	return res, nil
}

func (m *Memory[T]) Modify(ctx context.Context, id int64, fn func(current T) (T, error)) (res T, err error) {
	ctx, scope := m.scope(ctx, "Modify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = m.pause(ctx); err != nil {
		return res, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return res, failure.EntityNotFound(m.entity, id)
	}

	next, err := fn(m.records[idx].Clone())
	if err != nil {
		return res, err
	}

	next = next.WithIdentity(id)
	m.records[idx] = next.Clone()

	return next, nil
}

func (m *Memory[T]) Delete(ctx context.Context, id int64) (res T, err error) {
	ctx, scope := m.scope(ctx, "Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = m.pause(ctx); err != nil {
		return res, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return res, failure.EntityNotFound(m.entity, id)
	}

	res = m.records[idx]
	m.records = slices.Delete(m.records, idx, idx+1)

	return res, nil
}
