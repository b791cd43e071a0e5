package storage

import (
	"context"
	"time"

	"startupconnect/internal/observability"

	"go.opentelemetry.io/otel/codes"
)

// Instrumented decorates a Storage with latency and error metrics and client spans.
type Instrumented struct {
	next   Storage
	driver string
}

// Instrument wraps next, labelling its metrics with driver.
func Instrument(next Storage, driver string) *Instrumented {
	return &Instrumented{next: next, driver: driver}
}

// Unwrap returns the decorated storage.
func (s *Instrumented) Unwrap() Storage {
	return s.next
}

func (s *Instrumented) observe(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, span := observability.TraceStorageOperation(ctx, s.driver, op)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	observability.ObserveStorage(s.driver, op, start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s *Instrumented) Get(ctx context.Context, key string) (value string, found bool, err error) {
	err = s.observe(ctx, "get", func(ctx context.Context) error {
		var innerErr error
		value, found, innerErr = s.next.Get(ctx, key)
		return innerErr
	})
	return value, found, err
}

func (s *Instrumented) Set(ctx context.Context, key, value string) error {
	return s.observe(ctx, "set", func(ctx context.Context) error {
		return s.next.Set(ctx, key, value)
	})
}

func (s *Instrumented) Remove(ctx context.Context, key string) error {
	return s.observe(ctx, "remove", func(ctx context.Context) error {
		return s.next.Remove(ctx, key)
	})
}

func (s *Instrumented) Ping(ctx context.Context) error {
	return s.observe(ctx, "ping", s.next.Ping)
}

func (s *Instrumented) Close() error {
	return s.next.Close()
}
