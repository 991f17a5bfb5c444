// internal/datastore/cache.go
package datastore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"shamba-workers/internal/common/logger"
	"shamba-workers/internal/models"
)

// Cache keys, one per dataset.
const (
	keyMarkets      = "dataset:markets"
	keyForecasts    = "dataset:forecasts"
	keyWarehouses   = "dataset:warehouses"
	keyTransporters = "dataset:transporters"
	keyReports      = "dataset:sentiment_reports"
	keyClusters     = "dataset:sentiment_clusters"
	keyInsights     = "dataset:sentiment_insights"
)

// Cached decorates a Datasets source with a redis read-through cache.
// Cache failures are logged and degrade to direct reads; they never fail
// the request.
type Cached struct {
	source Datasets
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewCached wraps source with a redis cache. A zero ttl disables
// expiration and is almost certainly not what you want for price data.
func NewCached(source Datasets, rdb *redis.Client, ttl time.Duration, log logger.Logger) *Cached {
	return &Cached{source: source, rdb: rdb, ttl: ttl, logger: log}
}

func (c *Cached) GetMarkets(ctx context.Context) ([]models.Market, error) {
	var out []models.Market
	err := readThrough(ctx, c, keyMarkets, &out, func() (interface{}, error) {
		v, err := c.source.GetMarkets(ctx)
		out = v
		return v, err
	})
	return out, err
}

func (c *Cached) GetForecasts(ctx context.Context) ([]models.Forecast, error) {
	var out []models.Forecast
	err := readThrough(ctx, c, keyForecasts, &out, func() (interface{}, error) {
		v, err := c.source.GetForecasts(ctx)
		out = v
		return v, err
	})
	return out, err
}

func (c *Cached) GetWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	var out []models.Warehouse
	err := readThrough(ctx, c, keyWarehouses, &out, func() (interface{}, error) {
		v, err := c.source.GetWarehouses(ctx)
		out = v
		return v, err
	})
	return out, err
}

func (c *Cached) GetTransporters(ctx context.Context) ([]models.Transporter, error) {
	var out []models.Transporter
	err := readThrough(ctx, c, keyTransporters, &out, func() (interface{}, error) {
		v, err := c.source.GetTransporters(ctx)
		out = v
		return v, err
	})
	return out, err
}

func (c *Cached) GetSentimentReports(ctx context.Context) ([]models.SentimentReport, error) {
	var out []models.SentimentReport
	err := readThrough(ctx, c, keyReports, &out, func() (interface{}, error) {
		v, err := c.source.GetSentimentReports(ctx)
		out = v
		return v, err
	})
	return out, err
}

func (c *Cached) GetSentimentClusters(ctx context.Context) ([]models.SentimentCluster, error) {
	var out []models.SentimentCluster
	err := readThrough(ctx, c, keyClusters, &out, func() (interface{}, error) {
		v, err := c.source.GetSentimentClusters(ctx)
		out = v
		return v, err
	})
	return out, err
}

func (c *Cached) GetSentimentInsights(ctx context.Context) ([]models.SentimentInsight, error) {
	var out []models.SentimentInsight
	err := readThrough(ctx, c, keyInsights, &out, func() (interface{}, error) {
		v, err := c.source.GetSentimentInsights(ctx)
		out = v
		return v, err
	})
	return out, err
}

// Invalidate drops every dataset key. Called after dataset writes so the
// next read repopulates from the source.
func (c *Cached) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx,
		keyMarkets, keyForecasts, keyWarehouses, keyTransporters,
		keyReports, keyClusters, keyInsights,
	).Err()
}

// readThrough fills dest from the cache when the key is present, otherwise
// calls fetch and stores the result best-effort.
func readThrough(ctx context.Context, c *Cached, key string, dest interface{}, fetch func() (interface{}, error)) error {
	raw, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		if unmarshalErr := json.Unmarshal([]byte(raw), dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry, fall through to the source.
		c.logger.Warn("dropping undecodable cache entry", map[string]interface{}{
			"key": key,
		})
		_ = c.rdb.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("cache read failed, falling back to source", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}

	value, err := fetch()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("failed to encode dataset for cache", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil
	}
	if err := c.rdb.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	return nil
}
