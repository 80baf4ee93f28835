// Package cache keeps read projections of the ledger outside the database.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/entity"
)

const (
	defaultPrefix = "ledger"
	generationKey = "generation"
)

// RedisAggregateCache stores projections in Redis under a generation number.
// Invalidate bumps the generation, so stale entries are never read again and
// expire on their own TTL.
type RedisAggregateCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisAggregateCache creates a Redis backed cache.
func NewRedisAggregateCache(client *redis.Client, ttl time.Duration) *RedisAggregateCache {
	return &RedisAggregateCache{
		client: client,
		prefix: defaultPrefix,
		ttl:    ttl,
	}
}

var _ adapter.AggregateCache = (*RedisAggregateCache)(nil)

// GetAggregates returns cached category aggregates for the date range.
func (c *RedisAggregateCache) GetAggregates(ctx context.Context, dateRange entity.DateRange) ([]*entity.CategoryAggregate, adapter.CacheToken, bool, error) {
	var aggregates []*entity.CategoryAggregate
	token, ok, err := c.get(ctx, "aggregates", dateRangeKey(dateRange), &aggregates)
	if err != nil || !ok {
		return nil, token, false, err
	}
	return aggregates, token, true, nil
}

// SetAggregates caches category aggregates for the date range under token's generation.
func (c *RedisAggregateCache) SetAggregates(ctx context.Context, token adapter.CacheToken, dateRange entity.DateRange, aggregates []*entity.CategoryAggregate) error {
	return c.set(ctx, token, "aggregates", dateRangeKey(dateRange), aggregates)
}

// GetSummary returns a cached transaction summary for the filter.
func (c *RedisAggregateCache) GetSummary(ctx context.Context, filter entity.TransactionFilter) (*entity.TransactionSummary, adapter.CacheToken, bool, error) {
	var summary entity.TransactionSummary
	token, ok, err := c.get(ctx, "summary", filterKey(filter), &summary)
	if err != nil || !ok {
		return nil, token, false, err
	}
	return &summary, token, true, nil
}

// SetSummary caches a transaction summary for the filter under token's generation.
func (c *RedisAggregateCache) SetSummary(ctx context.Context, token adapter.CacheToken, filter entity.TransactionFilter, summary *entity.TransactionSummary) error {
	return c.set(ctx, token, "summary", filterKey(filter), summary)
}

// Invalidate drops every cached projection by moving to a new generation.
func (c *RedisAggregateCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.prefix+":"+generationKey).Err(); err != nil {
		return fmt.Errorf("failed to bump cache generation: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (c *RedisAggregateCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisAggregateCache) generation(ctx context.Context) (int64, error) {
	value, err := c.client.Get(ctx, c.prefix+":"+generationKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return strconv.ParseInt(value, 10, 64)
}

func (c *RedisAggregateCache) key(token adapter.CacheToken, kind, suffix string) string {
	return fmt.Sprintf("%s:%s:%d:%s", c.prefix, kind, token, suffix)
}

func (c *RedisAggregateCache) get(ctx context.Context, kind, suffix string, dest interface{}) (adapter.CacheToken, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return 0, false, err
	}
	token := adapter.CacheToken(gen)

	data, err := c.client.Get(ctx, c.key(token, kind, suffix)).Bytes()
	if errors.Is(err, redis.Nil) {
		return token, false, nil
	}
	if err != nil {
		return token, false, fmt.Errorf("failed to read %s from cache: %w", kind, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return token, false, fmt.Errorf("failed to decode cached %s: %w", kind, err)
	}
	return token, true, nil
}

// set writes under the generation the value was looked up in. After an
// Invalidate that generation is never read again.
func (c *RedisAggregateCache) set(ctx context.Context, token adapter.CacheToken, kind, suffix string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s for cache: %w", kind, err)
	}

	if err := c.client.Set(ctx, c.key(token, kind, suffix), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s to cache: %w", kind, err)
	}
	return nil
}

func formatBound(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func dateRangeKey(dateRange entity.DateRange) string {
	return hashParts(formatBound(dateRange.StartDate), formatBound(dateRange.EndDate))
}

func filterKey(filter entity.TransactionFilter) string {
	category := "-"
	if filter.CategoryID != nil {
		category = strconv.FormatInt(*filter.CategoryID, 10)
	}
	txnType := "-"
	if filter.Type != nil {
		txnType = string(*filter.Type)
	}
	return hashParts(
		formatBound(filter.StartDate),
		formatBound(filter.EndDate),
		category,
		txnType,
		strings.ToLower(strings.TrimSpace(filter.Search)),
	)
}

func hashParts(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:16])
}
