package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagy2shopify/internal/bagy"
)

type memStore struct {
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *memStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

type countingSource struct {
	calls int
	err   error
}

func (s *countingSource) GetCustomer(_ context.Context, id string) (*bagy.Customer, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &bagy.Customer{ID: bagy.Text(id), Name: "Ana Souza", Email: "ana@example.com"}, nil
}

func TestCustomersCachesLookups(t *testing.T) {
	src := &countingSource{}
	store := newMemStore()
	c := NewCustomers(src, store, nil)

	first, err := c.GetCustomer(context.Background(), "42")
	require.NoError(t, err)
	second, err := c.GetCustomer(context.Background(), "42")
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, 24*time.Hour, store.ttls["bagy:customer:42"])
}

func TestCustomersWithoutStore(t *testing.T) {
	src := &countingSource{}
	c := NewCustomers(src, nil, nil)
	_, _ = c.GetCustomer(context.Background(), "1")
	_, _ = c.GetCustomer(context.Background(), "1")
	assert.Equal(t, 2, src.calls)
}

func TestCustomersDoesNotCacheErrors(t *testing.T) {
	src := &countingSource{err: errors.New("404")}
	store := newMemStore()
	_, err := NewCustomers(src, store, nil).GetCustomer(context.Background(), "9")
	assert.Error(t, err)
	assert.Empty(t, store.data)
}

func TestRedisStoreUnreachableIsMiss(t *testing.T) {
	s := &RedisStore{Client: redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})}
	defer s.Close()

	_, ok := s.Get(context.Background(), "k")
	assert.False(t, ok)
	assert.Error(t, s.Set(context.Background(), "k", []byte("v"), time.Minute))
}

func TestNewRedisStoreParsesURL(t *testing.T) {
	s, err := NewRedisStore("redis://:secret@localhost:6380/2")
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, "localhost:6380", s.Client.Options().Addr)
	assert.Equal(t, 2, s.Client.Options().DB)

	_, err = NewRedisStore("http://nope")
	assert.Error(t, err)
}
