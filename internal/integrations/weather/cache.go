package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix      = "charter:weather:"
	refreshTimeout = 10 * time.Second
)

// Store хранилище сериализованных прогнозов
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Fetcher источник прогнозов (Client)
type Fetcher interface {
	GetForecast(ctx context.Context, q Query) (*Forecast, error)
}

// RedisStore Store поверх go-redis
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore создает хранилище на основе клиента Redis
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get возвращает значение или ErrCacheMiss
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return data, err
}

// Set сохраняет значение с TTL
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// NopStore хранилище без состояния, используется при выключенном Redis
type NopStore struct{}

func (NopStore) Get(context.Context, string) ([]byte, error) { return nil, ErrCacheMiss }

func (NopStore) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Cache кеш прогнозов по схеме stale-while-revalidate.
// До freshTTL значение отдается как есть, до staleTTL отдается с пометкой stale
// и обновляется в фоне, после staleTTL запрос идет к сервису синхронно.
type Cache struct {
	store    Store
	fetcher  Fetcher
	freshTTL time.Duration
	staleTTL time.Duration
	log      Logger
	now      func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
	wg       sync.WaitGroup
}

// NewCache создает кеш прогнозов
func NewCache(store Store, fetcher Fetcher, freshTTL, staleTTL time.Duration, log Logger) *Cache {
	return &Cache{
		store:    store,
		fetcher:  fetcher,
		freshTTL: freshTTL,
		staleTTL: staleTTL,
		log:      log,
		now:      time.Now,
		inflight: make(map[string]struct{}),
	}
}

// Get возвращает прогноз из кеша или из сервиса
func (c *Cache) Get(ctx context.Context, q Query) (*CachedForecast, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	// Ключ и запрос к сервису строятся по одним и тем же координатам
	q = q.Rounded()
	key := cacheKey(q)

	cached, err := c.load(ctx, key)
	if err != nil && !errors.Is(err, ErrCacheMiss) {
		// Redis недоступен - работаем напрямую с сервисом
		c.log.Warn("Weather cache read failed for %s: %v", key, err)
	}

	if cached != nil {
		age := c.now().Sub(cached.FetchedAt)
		if age < c.freshTTL {
			return cached, nil
		}
		if age < c.staleTTL {
			c.refreshAsync(key, q)
			cached.Stale = true
			return cached, nil
		}
	}

	return c.refresh(ctx, key, q)
}

// Wait дожидается завершения фоновых обновлений
func (c *Cache) Wait() {
	c.wg.Wait()
}

func (c *Cache) load(ctx context.Context, key string) (*CachedForecast, error) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var cached CachedForecast
	if err := json.Unmarshal(data, &cached); err != nil {
		c.log.Warn("Weather cache entry %s is corrupted: %v", key, err)
		return nil, ErrCacheMiss
	}
	return &cached, nil
}

func (c *Cache) refresh(ctx context.Context, key string, q Query) (*CachedForecast, error) {
	forecast, err := c.fetcher.GetForecast(ctx, q)
	if err != nil {
		return nil, err
	}

	entry := &CachedForecast{Forecast: forecast, FetchedAt: c.now()}

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal cache entry: %v", ErrInternal, err)
	}
	if err := c.store.Set(ctx, key, data, c.staleTTL); err != nil {
		c.log.Warn("Weather cache write failed for %s: %v", key, err)
	}

	return entry, nil
}

// refreshAsync запускает не больше одного фонового обновления на ключ
func (c *Cache) refreshAsync(key string, q Query) {
	c.mu.Lock()
	if _, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		return
	}
	c.inflight[key] = struct{}{}
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer func() {
			c.mu.Lock()
			delete(c.inflight, key)
			c.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		if _, err := c.refresh(ctx, key, q); err != nil {
			c.log.Error("Weather background refresh failed for %s: %v", key, err)
		}
	}()
}

func cacheKey(q Query) string {
	return keyPrefix +
		strconv.FormatFloat(q.Latitude, 'f', CoordinatePrecision, 64) + ":" +
		strconv.FormatFloat(q.Longitude, 'f', CoordinatePrecision, 64) + ":" + q.Date
}
