// this package provide "mock" implementation of caches for testing.
package mocks

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bearnovel/bearnovel/pkg/cache"
	"github.com/bearnovel/bearnovel/pkg/domain"
)

type CallLog[T any] []T

func (cl CallLog[T]) Times() int {
	return len(cl)
}

var errNotImplemented = errors.New("[MOCK] not implemented")

type SetArgs struct {
	Key   string
	Value []byte
	TTL   time.Duration
}

type MockStore struct {
	Impl struct {
		Get    func(ctx context.Context, key string) ([]byte, bool, error)
		Set    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
		Delete func(ctx context.Context, keys ...string) error

		CompareAndDelete func(ctx context.Context, key string, expected []byte) (bool, error)
	}
	Calls struct {
		Get    CallLog[string]
		Set    CallLog[SetArgs]
		Delete CallLog[[]string]

		CompareAndDelete CallLog[SetArgs]
	}
}

var _ cache.Store = &MockStore{}

func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.Calls.Get = append(m.Calls.Get, key)
	if m.Impl.Get == nil {
		return nil, false, errNotImplemented
	}
	return m.Impl.Get(ctx, key)
}

func (m *MockStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.Calls.Set = append(m.Calls.Set, SetArgs{Key: key, Value: value, TTL: ttl})
	if m.Impl.Set == nil {
		return errNotImplemented
	}
	return m.Impl.Set(ctx, key, value, ttl)
}

func (m *MockStore) Delete(ctx context.Context, keys ...string) error {
	m.Calls.Delete = append(m.Calls.Delete, keys)
	if m.Impl.Delete == nil {
		return errNotImplemented
	}
	return m.Impl.Delete(ctx, keys...)
}

func (m *MockStore) CompareAndDelete(ctx context.Context, key string, expected []byte) (bool, error) {
	m.Calls.CompareAndDelete = append(m.Calls.CompareAndDelete, SetArgs{Key: key, Value: expected})
	if m.Impl.CompareAndDelete == nil {
		return false, errNotImplemented
	}
	return m.Impl.CompareAndDelete(ctx, key, expected)
}

// MemoryStore is a Store on a map. Expiration is not supported.
//
// It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.Mutex
	Values map[string][]byte
}

var _ cache.Store = &MemoryStore{}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Values: map[string][]byte{}}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Values[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.Values, k)
	}
	return nil
}

func (m *MemoryStore) CompareAndDelete(_ context.Context, key string, expected []byte) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Values[key]
	if !ok || !bytes.Equal(v, expected) {
		return false, nil
	}
	delete(m.Values, key)
	return true, nil
}

// MockNovelCache is a NovelCache.
//
// Unlike other mocks, methods without Impl behave as always-miss cache.
type MockNovelCache struct {
	Impl struct {
		AllNovels        func(context.Context) ([]domain.Novel, bool)
		SetAllNovels     func(context.Context, []domain.Novel)
		PopularNovels    func(context.Context) ([]domain.Novel, bool)
		SetPopularNovels func(context.Context, []domain.Novel)
		DailyRankings    func(context.Context) ([]domain.RankingEntry, bool)
		SetDailyRankings func(context.Context, []domain.RankingEntry)
		InvalidateNovels func(context.Context)
	}
	Calls struct {
		AllNovels        int
		SetAllNovels     CallLog[[]domain.Novel]
		PopularNovels    int
		SetPopularNovels CallLog[[]domain.Novel]
		DailyRankings    int
		SetDailyRankings CallLog[[]domain.RankingEntry]
		InvalidateNovels int
	}
}

var _ cache.NovelCache = &MockNovelCache{}

func NewMockNovelCache() *MockNovelCache {
	return &MockNovelCache{}
}

func (m *MockNovelCache) AllNovels(ctx context.Context) ([]domain.Novel, bool) {
	m.Calls.AllNovels += 1
	if m.Impl.AllNovels == nil {
		return nil, false
	}
	return m.Impl.AllNovels(ctx)
}

func (m *MockNovelCache) SetAllNovels(ctx context.Context, novels []domain.Novel) {
	m.Calls.SetAllNovels = append(m.Calls.SetAllNovels, novels)
	if m.Impl.SetAllNovels != nil {
		m.Impl.SetAllNovels(ctx, novels)
	}
}

func (m *MockNovelCache) PopularNovels(ctx context.Context) ([]domain.Novel, bool) {
	m.Calls.PopularNovels += 1
	if m.Impl.PopularNovels == nil {
		return nil, false
	}
	return m.Impl.PopularNovels(ctx)
}

func (m *MockNovelCache) SetPopularNovels(ctx context.Context, novels []domain.Novel) {
	m.Calls.SetPopularNovels = append(m.Calls.SetPopularNovels, novels)
	if m.Impl.SetPopularNovels != nil {
		m.Impl.SetPopularNovels(ctx, novels)
	}
}

func (m *MockNovelCache) DailyRankings(ctx context.Context) ([]domain.RankingEntry, bool) {
	m.Calls.DailyRankings += 1
	if m.Impl.DailyRankings == nil {
		return nil, false
	}
	return m.Impl.DailyRankings(ctx)
}

func (m *MockNovelCache) SetDailyRankings(ctx context.Context, entries []domain.RankingEntry) {
	m.Calls.SetDailyRankings = append(m.Calls.SetDailyRankings, entries)
	if m.Impl.SetDailyRankings != nil {
		m.Impl.SetDailyRankings(ctx, entries)
	}
}

func (m *MockNovelCache) InvalidateNovels(ctx context.Context) {
	m.Calls.InvalidateNovels += 1
	if m.Impl.InvalidateNovels != nil {
		m.Impl.InvalidateNovels(ctx)
	}
}
