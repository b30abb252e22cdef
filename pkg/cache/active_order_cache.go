package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	// ActiveOrderTTL is the time-to-live for cached active orders. Long
	// enough to outlast any sitting; payment deletes the key explicitly.
	ActiveOrderTTL = 12 * time.Hour

	activeOrderKeyPrefix = "active_order"
)

// CachedOrderLine is one line of a cached active order.
type CachedOrderLine struct {
	ID         uuid.UUID       `json:"id"`
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
}

// CachedOrder is the denormalized read model for a table's active order.
// Stored as a JSON value keyed by table, so the floor view resolves a
// table's bill without touching PostgreSQL.
type CachedOrder struct {
	ID       uuid.UUID         `json:"id"`
	TableID  uuid.UUID         `json:"table_id"`
	Status   string            `json:"status"`
	Total    decimal.Decimal   `json:"total"`
	OpenedAt time.Time         `json:"opened_at"`
	Lines    []CachedOrderLine `json:"lines"`
}

// ActiveOrderCache provides read/write operations for active order entries.
// Key format: "active_order:{tableID}"
type ActiveOrderCache struct {
	client *RedisClient
}

// NewActiveOrderCache creates an ActiveOrderCache backed by the given RedisClient.
func NewActiveOrderCache(r *RedisClient) *ActiveOrderCache {
	return &ActiveOrderCache{client: r}
}

// Get retrieves the cached active order for a table.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ActiveOrderCache) Get(ctx context.Context, tableID uuid.UUID) (*CachedOrder, error) {
	raw, err := c.client.Client().Get(ctx, c.key(tableID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var order CachedOrder
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("cache unmarshal order: %w", err)
	}
	return &order, nil
}

// Set writes the active order for its table with a 12-hour TTL.
func (c *ActiveOrderCache) Set(ctx context.Context, order *CachedOrder) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("cache marshal order: %w", err)
	}
	if err := c.client.Client().Set(ctx, c.key(order.TableID), raw, ActiveOrderTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes the cached order for a table. Called when the order is paid.
func (c *ActiveOrderCache) Delete(ctx context.Context, tableID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(tableID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "active_order:{tableID}"
func (c *ActiveOrderCache) key(tableID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", activeOrderKeyPrefix, tableID)
}
