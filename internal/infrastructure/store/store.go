package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bizsuite/crm-api/internal/domain/contract"
)

const leadListKeyPrefix = "leads:list:"

// LeadCacheStore caches lead list pages in Redis. Mutations invalidate every
// cached page with one scan.
type LeadCacheStore struct {
	rdb     *redis.Client
	listTTL time.Duration
}

func NewLeadCacheStore(rdb *redis.Client) *LeadCacheStore {
	return &LeadCacheStore{
		rdb:     rdb,
		listTTL: 5 * time.Minute,
	}
}

var _ contract.ILeadCache = (*LeadCacheStore)(nil)

func leadListKey(key string) string { return leadListKeyPrefix + key }

func (c *LeadCacheStore) GetLeadsPage(ctx context.Context, key string) (*contract.CachedLeadsPage, bool, error) {
	b, err := c.rdb.Get(ctx, leadListKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	var page contract.CachedLeadsPage
	if err := json.Unmarshal(b, &page); err != nil {
		return nil, false, nil
	}
	return &page, true, nil
}

func (c *LeadCacheStore) SetLeadsPage(ctx context.Context, key string, page *contract.CachedLeadsPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, leadListKey(key), data, c.listTTL).Err()
}

func (c *LeadCacheStore) InvalidateLeadLists(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, leadListKeyPrefix+"*", 1000).Iterator()
	pipe := c.rdb.Pipeline()
	n := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		n++
		if n%200 == 0 {
			if _, err := pipe.Exec(ctx); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	_, _ = pipe.Exec(ctx)
	return nil
}

// NoopLeadCache is used when no Redis URL is configured.
type NoopLeadCache struct{}

var _ contract.ILeadCache = (*NoopLeadCache)(nil)

func NewNoopLeadCache() *NoopLeadCache { return &NoopLeadCache{} }

func (NoopLeadCache) GetLeadsPage(ctx context.Context, key string) (*contract.CachedLeadsPage, bool, error) {
	return nil, false, nil
}

func (NoopLeadCache) SetLeadsPage(ctx context.Context, key string, page *contract.CachedLeadsPage) error {
	return nil
}

func (NoopLeadCache) InvalidateLeadLists(ctx context.Context) error { return nil }
