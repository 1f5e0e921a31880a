// internal/cache/currency_cache.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"currency-exchange/internal/domain"
	"currency-exchange/internal/repository"
)

// CurrencyCache is a read-through cache over the currency catalog. The
// catalog is immutable, so entries are cached on first read and only evicted
// by TTL. Cache failures degrade to direct repository reads; a request is
// never failed because redis is down.
type CurrencyCache struct {
	inner  repository.CurrencyRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCurrencyCache wraps a CurrencyRepository with a redis read-through layer.
func NewCurrencyCache(inner repository.CurrencyRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CurrencyCache {
	return &CurrencyCache{inner: inner, client: client, ttl: ttl, logger: logger}
}

func codeKey(code string) string { return "currency:code:" + code }
func idKey(id int64) string      { return fmt.Sprintf("currency:id:%d", id) }

// CreateCurrency passes through to the repository. No invalidation is
// needed: codes are unique and entries immutable.
func (c *CurrencyCache) CreateCurrency(ctx context.Context, currency *domain.Currency) error {
	return c.inner.CreateCurrency(ctx, currency)
}

// GetCurrencyByCode resolves a code, preferring the cache.
func (c *CurrencyCache) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	if currency, ok := c.lookup(ctx, codeKey(code)); ok {
		return currency, nil
	}
	currency, err := c.inner.GetCurrencyByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	c.store(ctx, currency)
	return currency, nil
}

// GetCurrencyByID resolves an ID, preferring the cache.
func (c *CurrencyCache) GetCurrencyByID(ctx context.Context, id int64) (*domain.Currency, error) {
	if currency, ok := c.lookup(ctx, idKey(id)); ok {
		return currency, nil
	}
	currency, err := c.inner.GetCurrencyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, currency)
	return currency, nil
}

func (c *CurrencyCache) lookup(ctx context.Context, key string) (*domain.Currency, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("currency cache read failed, falling back to store", "key", key, "error", err)
		}
		return nil, false
	}
	var currency domain.Currency
	if err := json.Unmarshal(payload, &currency); err != nil {
		c.logger.Warn("currency cache entry corrupt, falling back to store", "key", key, "error", err)
		return nil, false
	}
	return &currency, true
}

func (c *CurrencyCache) store(ctx context.Context, currency *domain.Currency) {
	payload, err := json.Marshal(currency)
	if err != nil {
		return
	}
	pipe := c.client.Pipeline()
	pipe.Set(ctx, codeKey(currency.Code), payload, c.ttl)
	pipe.Set(ctx, idKey(currency.ID), payload, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("currency cache write failed", "currency", currency.Code, "error", err)
	}
}
