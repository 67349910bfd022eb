// Package ban tracks clients that keep hitting the rate limit and bans them
// for a while once they collect enough strikes.
package ban

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/record-services/internal/redissvc"
)

const (
	DefaultMaxStrikes = 5
	DefaultWindow     = time.Minute
	DefaultBanTTL     = 15 * time.Minute
)

// Store persists strike counters and bans.
type Store interface {
	// AddStrike increments the client's strike counter, starting a new
	// window of the given length when none is open, and returns the count.
	AddStrike(ctx context.Context, key string, window time.Duration) (int64, error)
	Ban(ctx context.Context, key string, ttl time.Duration) error
	IsBanned(ctx context.Context, key string) (bool, error)
}

type Tracker struct {
	store      Store
	maxStrikes int64
	window     time.Duration
	banTTL     time.Duration
}

func NewTracker(store Store, maxStrikes int, window, banTTL time.Duration) *Tracker {
	if maxStrikes <= 0 {
		maxStrikes = DefaultMaxStrikes
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if banTTL <= 0 {
		banTTL = DefaultBanTTL
	}
	return &Tracker{store: store, maxStrikes: int64(maxStrikes), window: window, banTTL: banTTL}
}

func (t *Tracker) IsBanned(ctx context.Context, key string) (bool, error) {
	return t.store.IsBanned(ctx, key)
}

// Strike records one rate limit violation and reports whether it got the
// client banned.
func (t *Tracker) Strike(ctx context.Context, key string) (bool, error) {
	strikes, err := t.store.AddStrike(ctx, key, t.window)
	if err != nil {
		return false, err
	}
	if strikes < t.maxStrikes {
		return false, nil
	}
	if err := t.store.Ban(ctx, key, t.banTTL); err != nil {
		return false, err
	}
	return true, nil
}

func strikeKey(key string) string { return "ratelimit:strikes:" + key }
func banKey(key string) string    { return "ratelimit:banned:" + key }

// RedisStore shares strikes and bans between replicas of a service.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rs *redissvc.RedisService) *RedisStore {
	return &RedisStore{rdb: rs.Rdb()}
}

func (s *RedisStore) AddStrike(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, strikeKey(key))
	pipe.ExpireNX(ctx, strikeKey(key), window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("record strike: %w", err)
	}
	return incr.Val(), nil
}

func (s *RedisStore) Ban(ctx context.Context, key string, ttl time.Duration) error {
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, banKey(key), time.Now().UTC().Format(time.RFC3339), ttl)
	pipe.Del(ctx, strikeKey(key))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("ban %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) IsBanned(ctx context.Context, key string) (bool, error) {
	err := s.rdb.Get(ctx, banKey(key)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check ban: %w", err)
	}
	return true, nil
}

// MemoryStore keeps strikes and bans in process. It is used when no redis
// address is configured.
type MemoryStore struct {
	mu      sync.Mutex
	strikes map[string]strikeWindow
	bans    map[string]time.Time
	now     func() time.Time
}

type strikeWindow struct {
	count   int64
	expires time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		strikes: map[string]strikeWindow{},
		bans:    map[string]time.Time{},
		now:     time.Now,
	}
}

func (s *MemoryStore) AddStrike(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w := s.strikes[key]
	if !now.Before(w.expires) {
		w = strikeWindow{expires: now.Add(window)}
	}
	w.count++
	s.strikes[key] = w
	return w.count, nil
}

func (s *MemoryStore) Ban(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bans[key] = s.now().Add(ttl)
	delete(s.strikes, key)
	return nil
}

func (s *MemoryStore) IsBanned(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.bans[key]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.bans, key)
		return false, nil
	}
	return true, nil
}
