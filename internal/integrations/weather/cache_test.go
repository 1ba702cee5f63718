package weather

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	lastTTL time.Duration
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return v, nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	s.lastTTL = ttl
	return nil
}

type countingFetcher struct {
	mu      sync.Mutex
	calls   int
	summary string
	err     error
	queries []Query
}

func (f *countingFetcher) GetForecast(_ context.Context, q Query) (*Forecast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return &Forecast{Latitude: q.Latitude, Longitude: q.Longitude, Date: q.Date, Summary: f.summary}, nil
}

func (f *countingFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var query = Query{Latitude: 25.76, Longitude: -80.19, Date: "2026-10-19"}

func newCache() (*Cache, *memStore, *countingFetcher, *clock) {
	store := &memStore{data: map[string][]byte{}}
	fetcher := &countingFetcher{summary: "calm"}
	clk := &clock{now: time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)}
	cache := NewCache(store, fetcher, 30*time.Minute, 6*time.Hour, nopLogger{})
	cache.now = clk.Now
	return cache, store, fetcher, clk
}

func TestCache_FreshHitSkipsFetcher(t *testing.T) {
	cache, store, fetcher, clk := newCache()
	ctx := context.Background()

	first, err := cache.Get(ctx, query)
	require.NoError(t, err)
	assert.False(t, first.Stale)
	assert.Equal(t, 6*time.Hour, store.lastTTL)

	clk.advance(10 * time.Minute)
	second, err := cache.Get(ctx, query)
	require.NoError(t, err)
	assert.False(t, second.Stale)
	assert.Equal(t, "calm", second.Forecast.Summary)
	assert.Equal(t, 1, fetcher.count())
}

func TestCache_StaleServedAndRefreshedInBackground(t *testing.T) {
	cache, _, fetcher, clk := newCache()
	ctx := context.Background()

	_, err := cache.Get(ctx, query)
	require.NoError(t, err)

	clk.advance(time.Hour)
	fetcher.mu.Lock()
	fetcher.summary = "small craft advisory"
	fetcher.mu.Unlock()

	stale, err := cache.Get(ctx, query)
	require.NoError(t, err)
	assert.True(t, stale.Stale)
	assert.Equal(t, "calm", stale.Forecast.Summary)

	cache.Wait()
	assert.Equal(t, 2, fetcher.count())

	fresh, err := cache.Get(ctx, query)
	require.NoError(t, err)
	assert.False(t, fresh.Stale)
	assert.Equal(t, "small craft advisory", fresh.Forecast.Summary)
	assert.Equal(t, 2, fetcher.count())
}

func TestCache_ExpiredEntryFetchesSynchronously(t *testing.T) {
	cache, _, fetcher, clk := newCache()
	ctx := context.Background()

	_, err := cache.Get(ctx, query)
	require.NoError(t, err)

	clk.advance(7 * time.Hour)
	_, err = cache.Get(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.count())
}

func TestCache_StoreFailureFallsBackToFetcher(t *testing.T) {
	cache, store, fetcher, _ := newCache()
	store.getErr = errors.New("redis: connection refused")

	got, err := cache.Get(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, "calm", got.Forecast.Summary)
	assert.Equal(t, 1, fetcher.count())
}

func TestCache_FetcherErrorAndValidation(t *testing.T) {
	cache, _, fetcher, _ := newCache()
	fetcher.err = ErrForecastNotFound

	_, err := cache.Get(context.Background(), query)
	assert.ErrorIs(t, err, ErrForecastNotFound)

	_, err = cache.Get(context.Background(), Query{Latitude: 100, Date: "2026-10-19"})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestCache_NearbyQueriesShareRoundedEntry(t *testing.T) {
	cache, store, fetcher, _ := newCache()

	first, err := cache.Get(context.Background(), Query{Latitude: 25.7612, Longitude: -80.1918, Date: query.Date})
	require.NoError(t, err)
	second, err := cache.Get(context.Background(), Query{Latitude: 25.7649, Longitude: -80.1901, Date: query.Date})
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.count())
	require.Len(t, fetcher.queries, 1)
	// Сервис получил те же координаты, что и ключ кеша
	assert.Equal(t, Query{Latitude: 25.76, Longitude: -80.19, Date: query.Date}, fetcher.queries[0])
	assert.Equal(t, first.Forecast, second.Forecast)
	assert.Contains(t, store.data, keyPrefix+"25.76:-80.19:"+query.Date)

	_, err = cache.Get(context.Background(), Query{Latitude: 25.7712, Longitude: -80.1918, Date: query.Date})
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.count())
}
