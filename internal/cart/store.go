package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keranjang dibatasi umurnya; kasir yang meninggalkan keranjang semalaman
// mulai lagi dari kosong.
const cartTTL = 24 * time.Hour

// Store menyimpan keranjang per user. Implementasi Redis dipakai saat
// REDIS_ADDR di-set (aman untuk lebih dari satu instance server), selain itu
// keranjang tinggal di memori proses.
type Store interface {
	Get(ctx context.Context, userID uint) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, userID uint) error
}

type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(userID uint) string {
	return fmt.Sprintf("%scart:%d", s.prefix, userID)
}

func (s *RedisStore) Get(ctx context.Context, userID uint) (*Cart, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return New(userID), nil
		}
		return nil, fmt.Errorf("keranjang tidak bisa diambil: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("data keranjang rusak: %w", err)
	}
	return &cart, nil
}

func (s *RedisStore) Save(ctx context.Context, cart *Cart) error {
	cart.UpdatedAt = time.Now()
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("keranjang tidak bisa diserialisasi: %w", err)
	}
	if err := s.client.Set(ctx, s.key(cart.UserID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("keranjang tidak bisa disimpan: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID uint) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("keranjang tidak bisa dihapus: %w", err)
	}
	return nil
}

// MemoryStore menyimpan keranjang di map dengan kedaluwarsa sederhana.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[uint]*Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[uint]*Cart)}
}

func (s *MemoryStore) Get(_ context.Context, userID uint) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.carts[userID]
	if !ok || time.Since(stored.UpdatedAt) > cartTTL {
		delete(s.carts, userID)
		return New(userID), nil
	}
	return copyCart(stored), nil
}

func (s *MemoryStore) Save(_ context.Context, cart *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart.UpdatedAt = time.Now()
	s.carts[cart.UserID] = copyCart(cart)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}

func copyCart(c *Cart) *Cart {
	cp := *c
	cp.Items = make([]Item, len(c.Items))
	copy(cp.Items, c.Items)
	return &cp
}
