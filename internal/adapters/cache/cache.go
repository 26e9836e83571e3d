// Package cache wraps the client repository with Redis-backed caching for
// the full-board read. Every mutation evicts the cached list.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/laneboard/internal/ports/secondary"
)

const clientsKey = "laneboard:clients"

// ClientRepository decorates a secondary.ClientRepository with a cached
// GetAll. Lane and by-id reads pass through: they feed the engine's
// snapshots and must always see the store.
type ClientRepository struct {
	base  secondary.ClientRepository
	redis *redis.Client
	ttl   time.Duration
}

// NewClientRepository creates the caching decorator.
func NewClientRepository(base secondary.ClientRepository, client *redis.Client, ttl time.Duration) *ClientRepository {
	if base == nil {
		panic("cache.NewClientRepository: base repository is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &ClientRepository{base: base, redis: client, ttl: ttl}
}

// GetAll serves the full client list from cache when possible.
func (c *ClientRepository) GetAll(ctx context.Context) ([]*secondary.ClientRecord, error) {
	if clients, ok := c.loadFromCache(ctx); ok {
		return clients, nil
	}

	clients, err := c.base.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, clients)
	return clients, nil
}

// GetByID passes through to the backing repository.
func (c *ClientRepository) GetByID(ctx context.Context, id int) (*secondary.ClientRecord, error) {
	return c.base.GetByID(ctx, id)
}

// GetByLane passes through to the backing repository.
func (c *ClientRepository) GetByLane(ctx context.Context, status string) ([]*secondary.ClientRecord, error) {
	return c.base.GetByLane(ctx, status)
}

// Create writes through and evicts the cached list.
func (c *ClientRepository) Create(ctx context.Context, client *secondary.ClientRecord) error {
	if err := c.base.Create(ctx, client); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

// ApplyUpdates writes through and evicts the cached list.
func (c *ClientRepository) ApplyUpdates(ctx context.Context, updates []secondary.ClientUpdate) error {
	if err := c.base.ApplyUpdates(ctx, updates); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

// UpdateFields writes through and evicts the cached list.
func (c *ClientRepository) UpdateFields(ctx context.Context, id int, name, description *string) error {
	if err := c.base.UpdateFields(ctx, id, name, description); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

// Delete writes through and evicts the cached list.
func (c *ClientRepository) Delete(ctx context.Context, id int) error {
	if err := c.base.Delete(ctx, id); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

func (c *ClientRepository) loadFromCache(ctx context.Context) ([]*secondary.ClientRecord, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, clientsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors fall back to the backing repository without failing.
			_ = c.redis.Del(ctx, clientsKey).Err()
		}
		return nil, false
	}
	var clients []*secondary.ClientRecord
	if err := json.Unmarshal(data, &clients); err != nil {
		_ = c.redis.Del(ctx, clientsKey).Err()
		return nil, false
	}
	return clients, true
}

func (c *ClientRepository) store(ctx context.Context, clients []*secondary.ClientRecord) {
	if c.redis == nil {
		return
	}
	data, err := json.Marshal(clients)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, clientsKey, data, c.ttl).Err()
}

func (c *ClientRepository) evict(ctx context.Context) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Del(ctx, clientsKey).Err()
}

// Ensure ClientRepository implements the interface
var _ secondary.ClientRepository = (*ClientRepository)(nil)
