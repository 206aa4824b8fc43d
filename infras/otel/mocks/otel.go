// Package mocks provides a tracer that records nothing, for tests that only
// need the otel.Otel and otel.Scope contracts satisfied.
package mocks

import (
	"context"

	"tickoff/infras/otel"
)

type noop struct{}

var (
	_ otel.Otel  = noop{}
	_ otel.Scope = noop{}
)

// NewOtel returns an otel.Otel whose scopes discard every call.
func NewOtel() otel.Otel {
	return noop{}
}

func (n noop) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, n
}

func (noop) Shutdown(context.Context) error { return nil }

func (noop) End() {}
func (noop) TraceError(error) {}
func (noop) TraceIfError(error) {}
func (noop) AddEvent(string) {}
func (noop) SetAttribute(string, any) {}
func (noop) SetAttributes(map[string]any) {}
