package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	apperrors "ai-notebook.com/ai-notebook/internal/errors"
	"ai-notebook.com/ai-notebook/internal/kv"
	"ai-notebook.com/ai-notebook/internal/metrics"
)

// SchemaVersion is written into every envelope. Version 0 is the legacy
// layout: a bare JSON array with no envelope.
const SchemaVersion = 1

type envelope[T any] struct {
	Version int `json:"version"`
	Items   []T `json:"items"`
}

// collection persists a whole slice of records under one key. Every write
// replaces the full slice, including records the caller did not touch.
type collection[T any] struct {
	mu     sync.Mutex
	store  kv.Store
	key    string
	logger *zap.Logger

	// name labels write metrics. Keys derived from user input share one name
	// so the label set stays bounded.
	name string
}

func newCollection[T any](store kv.Store, key string, logger *zap.Logger) *collection[T] {
	return &collection[T]{store: store, key: key, logger: logger, name: key}
}

func (c *collection[T]) all(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, _, err := c.load(ctx)
	return items, err
}

// initialize writes items only when the key is absent and reports whether it wrote.
func (c *collection[T]) initialize(ctx context.Context, items []T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", c.key, err)
	}
	if found {
		return false, nil
	}
	return true, c.save(ctx, items)
}

// mutate runs fn over the current items and persists what it returns.
// Nothing is written when fn fails.
func (c *collection[T]) mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, _, err := c.load(ctx)
	if err != nil {
		return err
	}

	updated, err := fn(items)
	if err != nil {
		return err
	}

	return c.save(ctx, updated)
}

// drop removes the key from the store.
func (c *collection[T]) drop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Remove(ctx, c.key); err != nil {
		return fmt.Errorf("removing %s: %w", c.key, err)
	}
	c.logger.Debug("collection removed", zap.String("key", c.key))
	return nil
}

func (c *collection[T]) load(ctx context.Context) ([]T, bool, error) {
	raw, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", c.key, err)
	}
	if !found {
		return []T{}, false, nil
	}

	items, err := decodeEnvelope[T](raw)
	if err != nil {
		c.logger.Warn("stored collection is corrupt",
			zap.String("key", c.key),
			zap.Error(err),
		)
		return nil, true, fmt.Errorf("%w: key %s: %v", apperrors.ErrCorruptState, c.key, err)
	}

	return items, true, nil
}

func (c *collection[T]) save(ctx context.Context, items []T) error {
	raw, err := encodeEnvelope(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.key, err)
	}

	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("writing %s: %w", c.key, err)
	}

	metrics.IncrementCollectionWrite(c.name)
	c.logger.Debug("collection written",
		zap.String("key", c.key),
		zap.Int("items", len(items)),
	)
	return nil
}

func encodeEnvelope[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(envelope[T]{Version: SchemaVersion, Items: items})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeEnvelope[T any](raw string) ([]T, error) {
	trimmed := strings.TrimSpace(raw)

	if strings.HasPrefix(trimmed, "[") {
		var items []T
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			return nil, fmt.Errorf("decoding legacy array: %w", err)
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	}

	var env envelope[T]
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}
	if env.Version < 1 || env.Version > SchemaVersion {
		return nil, fmt.Errorf("unsupported schema version %d", env.Version)
	}
	if env.Items == nil {
		env.Items = []T{}
	}
	return env.Items, nil
}
