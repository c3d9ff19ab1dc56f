// cache stores derived data and session tokens in redis.
//
// Calls to redis go through a circuit breaker. While the breaker is open,
// operations fail fast with ErrUnavailable instead of waiting for redis.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sony/gobreaker"
)

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("cache is unavailable")

type Store interface {
	// Get returns the value for the key.
	//
	// The bool is false when the key is not found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the value with ttl. ttl 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// CompareAndDelete removes the key only when its value is expected, atomically.
	//
	// The bool is true when the key is removed.
	CompareAndDelete(ctx context.Context, key string, expected []byte) (bool, error)
}

type redisStore struct {
	client  redis.Cmdable
	prefix  string
	breaker *gobreaker.CircuitBreaker
}

type Option func(*gobreaker.Settings) *gobreaker.Settings

// WithBreakerTimeout sets the duration the breaker stays open before trying redis again.
func WithBreakerTimeout(d time.Duration) Option {
	return func(s *gobreaker.Settings) *gobreaker.Settings {
		s.Timeout = d
		return s
	}
}

// WithTripAfter sets how many consecutive failures open the breaker.
func WithTripAfter(failures uint32) Option {
	return func(s *gobreaker.Settings) *gobreaker.Settings {
		s.ReadyToTrip = func(counts gobreaker.Counts) bool {
			return failures <= counts.ConsecutiveFailures
		}
		return s
	}
}

// WithStateChange registers a callback for breaker state changes.
func WithStateChange(f func(from, to gobreaker.State)) Option {
	return func(s *gobreaker.Settings) *gobreaker.Settings {
		s.OnStateChange = func(_ string, from, to gobreaker.State) { f(from, to) }
		return s
	}
}

// NewRedisStore creates a Store.
//
// Keys are prefixed with prefix.
func NewRedisStore(client redis.Cmdable, prefix string, options ...Option) Store {
	st := &gobreaker.Settings{
		Name:     "redis",
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return 3 <= counts.ConsecutiveFailures
		},
		// a miss is not a failure of redis.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
	}
	for _, o := range options {
		st = o(st)
	}
	return &redisStore{
		client:  client,
		prefix:  prefix,
		breaker: gobreaker.NewCircuitBreaker(*st),
	}
}

func (r *redisStore) key(k string) string {
	return r.prefix + k
}

func (r *redisStore) execute(f func() (any, error)) (any, error) {
	v, err := r.breaker.Execute(f)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, errors.Join(ErrUnavailable, err)
	}
	return v, err
}

func (r *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := r.execute(func() (any, error) {
		return r.client.Get(ctx, r.key(key)).Bytes()
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v.([]byte), true, nil
}

func (r *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := r.execute(func() (any, error) {
		return nil, r.client.Set(ctx, r.key(key), value, ttl).Err()
	})
	return err
}

func (r *redisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = r.key(k)
	}
	_, err := r.execute(func() (any, error) {
		return nil, r.client.Del(ctx, prefixed...).Err()
	})
	return err
}

const compareAndDeleteScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

func (r *redisStore) CompareAndDelete(ctx context.Context, key string, expected []byte) (bool, error) {
	v, err := r.execute(func() (any, error) {
		return r.client.Eval(ctx, compareAndDeleteScript, []string{r.key(key)}, string(expected)).Int64()
	})
	if err != nil {
		return false, err
	}
	return v.(int64) == 1, nil
}
