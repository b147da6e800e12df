package repository

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type base struct {
	logger *zap.Logger
	now    func() time.Time
	newID  func(prefix string) string
}

// Option customizes a repository. Tests use it to pin time and ids.
type Option func(*base)

func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

func WithIDGenerator(gen func(prefix string) string) Option {
	return func(b *base) { b.newID = gen }
}

func newBase(logger *zap.Logger, opts []Option) base {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := base{
		logger: logger,
		now:    time.Now,
		newID:  newUUID,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *base) timestamp() time.Time {
	return b.now().UTC()
}

func newUUID(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}
	return prefix + "-" + uuid.NewString()
}
