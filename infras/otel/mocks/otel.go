package mocks

import (
	"context"
	"hotel/infras/otel"
	"sync"
)

// Otel hands out no-op scopes and keeps every error they were asked to trace.
type Otel struct {
	mu     sync.Mutex
	traced []error
}

func NewOtel() *Otel {
	return &Otel{}
}

func (o *Otel) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, &scope{owner: o}
}

// Traced returns the errors recorded so far, oldest first.
func (o *Otel) Traced() []error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]error(nil), o.traced...)
}

func (o *Otel) record(err error) {
	o.mu.Lock()
	o.traced = append(o.traced, err)
	o.mu.Unlock()
}

type scope struct {
	owner *Otel
}

func (s *scope) End() {}

func (s *scope) AddEvent(string) {}

func (s *scope) SetAttribute(string, any) {}

func (s *scope) SetAttributes(map[string]any) {}

func (s *scope) TraceError(err error) {
	s.owner.record(err)
}

func (s *scope) TraceIfError(err error) {
	if err != nil {
		s.owner.record(err)
	}
}
