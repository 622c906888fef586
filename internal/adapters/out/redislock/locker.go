// Package redislock serializes dispatch attempts across service instances with
// short-lived Redis locks.
package redislock

import (
	"context"
	"errors"
	"slices"
	"time"

	"dispatch/internal/pkg/errs"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	keyPrefix  = "dispatch:lock:"
	defaultTTL = 15 * time.Second
)

// Locker implements ports.ResourceLocker on top of bsm/redislock.
type Locker struct {
	client *redislock.Client
	ttl    time.Duration
	retry  redislock.RetryStrategy
	log    logrus.FieldLogger
}

type Option func(*Locker)

// WithTTL bounds how long a crashed holder can block a resource.
func WithTTL(ttl time.Duration) Option {
	return func(l *Locker) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

// WithRetry waits up to attempts*backoff for a held key before giving up.
func WithRetry(backoff time.Duration, attempts int) Option {
	return func(l *Locker) {
		l.retry = redislock.LimitRetry(redislock.LinearBackoff(backoff), attempts)
	}
}

func NewLocker(rdb redis.UniversalClient, log logrus.FieldLogger, opts ...Option) *Locker {
	l := &Locker{
		client: redislock.New(rdb),
		ttl:    defaultTTL,
		retry:  redislock.NoRetry(),
		log:    log.WithField("component", "redislock"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lock obtains the keys in sorted order so two callers never wait on each other
// crosswise. On any failure the keys already taken are released again.
func (l *Locker) Lock(ctx context.Context, keys ...string) (func(context.Context) error, error) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	held := make([]*redislock.Lock, 0, len(sorted))
	for _, key := range sorted {
		lock, err := l.client.Obtain(ctx, keyPrefix+key, l.ttl, &redislock.Options{RetryStrategy: l.retry})
		if err != nil {
			if errors.Is(err, redislock.ErrNotObtained) {
				err = errs.NewConflictErrorWithCause(key, "is being dispatched by another request", err)
			}
			if releaseErr := l.release(ctx, held); releaseErr != nil {
				l.log.WithError(releaseErr).WithField("key", key).Error("failed to release partially obtained locks")
				return nil, errors.Join(err, releaseErr)
			}
			return nil, err
		}
		held = append(held, lock)
	}

	return func(ctx context.Context) error {
		return l.release(ctx, held)
	}, nil
}

func (l *Locker) release(ctx context.Context, held []*redislock.Lock) error {
	var errList []error
	for i := len(held) - 1; i >= 0; i-- {
		err := held[i].Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			// expired while the transaction ran; the registry still guarded the write
			l.log.WithField("key", held[i].Key()).Warn("lock expired before release")
			continue
		}
		if err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

// NoopLocker is used when no Redis address is configured. The registry's
// conditional updates alone keep allocations exclusive.
type NoopLocker struct{}

func (NoopLocker) Lock(context.Context, ...string) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}
