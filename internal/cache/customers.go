// Package cache keeps source customer lookups in Redis between runs.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"bagy2shopify/internal/bagy"
	"bagy2shopify/internal/logger"
)

const (
	customerTTL    = 24 * time.Hour
	customerPrefix = "bagy:customer:"
)

// Store is a key/value store with expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisStore is a Store on a go-redis client. Any read error is a miss.
type RedisStore struct {
	Client *redis.Client
}

// NewRedisStore connects using a redis:// URL.
func NewRedisStore(rawURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &RedisStore{Client: redis.NewClient(opts)}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := s.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.Client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Close() error {
	return s.Client.Close()
}

// CustomerSource fetches a customer from the source API.
type CustomerSource interface {
	GetCustomer(ctx context.Context, id string) (*bagy.Customer, error)
}

// Customers serves lookups from Store and falls back to Source, storing
// what it fetched. A nil Store disables caching.
type Customers struct {
	Source CustomerSource
	Store  Store
	TTL    time.Duration
	Log    *zap.Logger
}

func NewCustomers(src CustomerSource, store Store, log *zap.Logger) *Customers {
	return &Customers{Source: src, Store: store, TTL: customerTTL, Log: logger.OrNop(log)}
}

func (c *Customers) GetCustomer(ctx context.Context, id string) (*bagy.Customer, error) {
	key := customerPrefix + id
	if c.Store != nil {
		if val, ok := c.Store.Get(ctx, key); ok {
			var cust bagy.Customer
			if json.Unmarshal(val, &cust) == nil {
				return &cust, nil
			}
		}
	}

	cust, err := c.Source.GetCustomer(ctx, id)
	if err != nil || c.Store == nil {
		return cust, err
	}

	b, _ := json.Marshal(cust)
	ttl := c.TTL
	if ttl <= 0 {
		ttl = customerTTL
	}
	if err := c.Store.Set(ctx, key, b, ttl); err != nil {
		logger.OrNop(c.Log).Warn("falha ao gravar cliente no cache", zap.String("customer_id", id), zap.Error(err))
	}
	return cust, nil
}
