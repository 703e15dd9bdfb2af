package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"careersight-srv/internal/report/repository"
)

// Keys have no TTL: entries are invalidated explicitly when a new version
// publishes or the owner clears them.
func cacheKey(ownerID, reportType string) string {
	return fmt.Sprintf("report:current:%s:%s", ownerID, reportType)
}

// GetReportData returns the cached report body or ErrCacheMiss.
func (c *implCache) GetReportData(ctx context.Context, ownerID, reportType string) (json.RawMessage, error) {
	val, err := c.redis.Get(ctx, cacheKey(ownerID, reportType))
	if errors.Is(err, goredis.Nil) {
		return nil, repository.ErrCacheMiss
	}
	if err != nil {
		c.l.Errorf(ctx, "report.repository.redis.GetReportData: Failed to get cache entry: %v", err)
		return nil, err
	}

	return json.RawMessage(val), nil
}

// SetReportData stores the report body for the key.
func (c *implCache) SetReportData(ctx context.Context, ownerID, reportType string, data json.RawMessage) error {
	if err := c.redis.Set(ctx, cacheKey(ownerID, reportType), []byte(data), 0); err != nil {
		c.l.Errorf(ctx, "report.repository.redis.SetReportData: Failed to set cache entry: %v", err)
		return err
	}
	return nil
}

// DeleteReportData removes the cached entry for the key.
func (c *implCache) DeleteReportData(ctx context.Context, ownerID, reportType string) error {
	if err := c.redis.Delete(ctx, cacheKey(ownerID, reportType)); err != nil {
		c.l.Errorf(ctx, "report.repository.redis.DeleteReportData: Failed to delete cache entry: %v", err)
		return err
	}
	return nil
}
