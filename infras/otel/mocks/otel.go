package mocks

import (
	"context"
	"sync"

	"hotelops/infras/otel"
)

// Otel hands out recording scopes keyed by span name. The last scope opened under a name
// wins.
type Otel struct {
	mu     sync.Mutex
	scopes map[string]*Scope
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	scope := NewScope()

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.scopes == nil {
		o.scopes = map[string]*Scope{}
	}

	o.scopes[spanName] = scope

	return ctx, scope
}

// Span returns the scope last opened as spanName, or nil.
func (o *Otel) Span(spanName string) *Scope {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.scopes[spanName]
}

func (o *Otel) Shutdown(_ context.Context) error {
	return nil
}

func NewOtel() *Otel {
	return &Otel{}
}
