// Package kv provides the string key-value stores that back every collection.
package kv

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ai-notebook.com/ai-notebook/internal/metrics"
)

// Store is a synchronous string key-value store. A missing key is reported
// through found, not through err.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)

	Set(ctx context.Context, key, value string) error

	Remove(ctx context.Context, key string) error
}

type prefixed struct {
	next   Store
	prefix string
}

// WithPrefix namespaces every key passed to next.
func WithPrefix(next Store, prefix string) Store {
	if prefix == "" {
		return next
	}
	return &prefixed{next: next, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.next.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.next.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Remove(ctx context.Context, key string) error {
	return p.next.Remove(ctx, p.prefix+key)
}

type instrumented struct {
	next    Store
	backend string
	logger  *zap.Logger
}

// Instrument records metrics and debug logs for every call on next.
func Instrument(next Store, backend string, logger *zap.Logger) Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &instrumented{next: next, backend: backend, logger: logger}
}

func (i *instrumented) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	value, found, err := i.next.Get(ctx, key)
	i.observe("get", key, err, start)
	return value, found, err
}

func (i *instrumented) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := i.next.Set(ctx, key, value)
	i.observe("set", key, err, start)
	return err
}

func (i *instrumented) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := i.next.Remove(ctx, key)
	i.observe("remove", key, err, start)
	return err
}

func (i *instrumented) observe(op, key string, err error, start time.Time) {
	elapsed := time.Since(start)
	metrics.RecordStoreOperation(i.backend, op, err, elapsed)
	if err != nil {
		i.logger.Error("kv operation failed",
			zap.String("backend", i.backend),
			zap.String("operation", op),
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	i.logger.Debug("kv operation",
		zap.String("backend", i.backend),
		zap.String("operation", op),
		zap.String("key", key),
		zap.Duration("duration", elapsed),
	)
}
