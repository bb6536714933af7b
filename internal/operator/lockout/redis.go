package lockout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	failurePrefix = "amparo:lockout:fail:"
	lockPrefix    = "amparo:lockout:lock:"
)

// RedisStore counts failures with INCR under a sliding window TTL. Locks are
// separate keys holding the unlock time in Unix milliseconds.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Record, error) {
	var failCmd, lockCmd *redis.StringCmd
	_, err := s.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		failCmd = p.Get(ctx, failurePrefix+key)
		lockCmd = p.Get(ctx, lockPrefix+key)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get lockout record: %w", err)
	}

	rec := &Record{Key: key}
	found := false
	if n, err := failCmd.Int(); err == nil {
		rec.Failures = n
		found = true
	}
	if raw, err := lockCmd.Result(); err == nil {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse lockout deadline: %w", err)
		}
		until := time.UnixMilli(ms)
		rec.LockedUntil = &until
		found = true
	}
	if !found {
		return nil, nil
	}
	return rec, nil
}

func (s *RedisStore) RecordFailure(ctx context.Context, key string, now time.Time, window time.Duration) (*Record, error) {
	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, failurePrefix+key)
		p.Expire(ctx, failurePrefix+key, window)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record login failure: %w", err)
	}
	return &Record{Key: key, Failures: int(incr.Val()), LastFailureAt: now}, nil
}

func (s *RedisStore) Lock(ctx context.Context, key string, until time.Time, ttl time.Duration) error {
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, lockPrefix+key, strconv.FormatInt(until.UnixMilli(), 10), ttl)
		p.Del(ctx, failurePrefix+key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("lock sign-in: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, failurePrefix+key, lockPrefix+key).Err(); err != nil {
		return fmt.Errorf("clear lockout: %w", err)
	}
	return nil
}
