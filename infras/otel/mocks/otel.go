// Package mocks provides tracing doubles for tests.
package mocks

import (
	"context"
	"sync"

	"frontdesk/infras/otel"
)

// Otel records the spans that were opened and the errors traced on them.
type Otel struct {
	mu     sync.Mutex
	spans  []string
	errors []error
}

// NewOtel returns a tracer that records nothing outside the process.
func NewOtel() *Otel {
	return &Otel{}
}

// NewScope implements otel.Otel.
func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	o.mu.Lock()
	o.spans = append(o.spans, spanName)
	o.mu.Unlock()

	return ctx, &scope{parent: o}
}

// Spans returns the names of the spans opened so far.
func (o *Otel) Spans() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]string(nil), o.spans...)
}

// Errors returns the errors traced so far.
func (o *Otel) Errors() []error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]error(nil), o.errors...)
}

type scope struct {
	parent *Otel
}

func (s *scope) End()                         {}
func (s *scope) AddEvent(string)              {}
func (s *scope) SetAttribute(string, any)     {}
func (s *scope) SetAttributes(map[string]any) {}

func (s *scope) TraceError(err error) {
	s.parent.mu.Lock()
	s.parent.errors = append(s.parent.errors, err)
	s.parent.mu.Unlock()
}

func (s *scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}
