// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/fiscalops/backend/internal/application/adapter"
	"github.com/fiscalops/backend/internal/domain/entity"
)

// cachedBracket is the cache wire form of a bracket row. Decimals are cached
// as strings so the round-trip is exact.
type cachedBracket struct {
	Jurisdiction string  `json:"jurisdiction"`
	TaxYear      int     `json:"taxYear"`
	MinIncome    string  `json:"minIncome"`
	MaxIncome    *string `json:"maxIncome,omitempty"`
	Rate         string  `json:"rate"`
}

// cachedTaxBracketRepository wraps a TaxBracketRepository with a cache-aside
// redis layer. Bracket tables are small, read on every calculation run, and
// change rarely, which makes them the natural thing to cache. Cache failures
// degrade to the database; they never fail a read.
type cachedTaxBracketRepository struct {
	inner adapter.TaxBracketRepository
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedTaxBracketRepository wraps repo with a redis cache-aside layer.
func NewCachedTaxBracketRepository(inner adapter.TaxBracketRepository, redisClient *redis.Client, ttl time.Duration) adapter.TaxBracketRepository {
	return &cachedTaxBracketRepository{
		inner: inner,
		redis: redisClient,
		ttl:   ttl,
	}
}

func bracketCacheKey(jurisdiction string, taxYear int) string {
	return fmt.Sprintf("tax:brackets:%s:%d", jurisdiction, taxYear)
}

// FindByJurisdictionYear serves the bracket table from cache when present,
// falling through to the database and populating the cache on a miss.
// Not-found is deliberately not cached: importing a table must take effect
// on the next calculation, not after a negative-cache TTL.
func (r *cachedTaxBracketRepository) FindByJurisdictionYear(ctx context.Context, jurisdiction string, taxYear int) ([]*entity.TaxBracket, error) {
	key := bracketCacheKey(jurisdiction, taxYear)

	payload, err := r.redis.Get(ctx, key).Bytes()
	if err == nil {
		brackets, decodeErr := decodeCachedBrackets(payload)
		if decodeErr == nil {
			return brackets, nil
		}
		slog.Warn("Discarding undecodable bracket cache entry", "key", key, "error", decodeErr)
		r.redis.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("Bracket cache read failed, falling through to database", "key", key, "error", err)
	}

	brackets, err := r.inner.FindByJurisdictionYear(ctx, jurisdiction, taxYear)
	if err != nil {
		return nil, err
	}

	if payload, encodeErr := encodeCachedBrackets(brackets); encodeErr == nil {
		if setErr := r.redis.Set(ctx, key, payload, r.ttl).Err(); setErr != nil {
			slog.Warn("Bracket cache write failed", "key", key, "error", setErr)
		}
	}

	return brackets, nil
}

// ReplaceTable replaces the stored table and invalidates the cache entry.
// The delete runs after the write so a concurrent reader can at worst
// repopulate the cache with the new table.
func (r *cachedTaxBracketRepository) ReplaceTable(ctx context.Context, jurisdiction string, taxYear int, brackets []*entity.TaxBracket) error {
	if err := r.inner.ReplaceTable(ctx, jurisdiction, taxYear, brackets); err != nil {
		return err
	}

	key := bracketCacheKey(jurisdiction, taxYear)
	if err := r.redis.Del(ctx, key).Err(); err != nil {
		slog.Warn("Bracket cache invalidation failed", "key", key, "error", err)
	}
	return nil
}

func encodeCachedBrackets(brackets []*entity.TaxBracket) ([]byte, error) {
	cached := make([]cachedBracket, len(brackets))
	for i, b := range brackets {
		cached[i] = cachedBracket{
			Jurisdiction: b.Jurisdiction,
			TaxYear:      b.TaxYear,
			MinIncome:    b.MinIncome.String(),
			Rate:         b.Rate.String(),
		}
		if b.MaxIncome != nil {
			max := b.MaxIncome.String()
			cached[i].MaxIncome = &max
		}
	}
	return json.Marshal(cached)
}

func decodeCachedBrackets(payload []byte) ([]*entity.TaxBracket, error) {
	var cached []cachedBracket
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, err
	}

	brackets := make([]*entity.TaxBracket, len(cached))
	for i, c := range cached {
		minIncome, err := decimal.NewFromString(c.MinIncome)
		if err != nil {
			return nil, err
		}
		rate, err := decimal.NewFromString(c.Rate)
		if err != nil {
			return nil, err
		}

		bracket := &entity.TaxBracket{
			Jurisdiction: c.Jurisdiction,
			TaxYear:      c.TaxYear,
			MinIncome:    minIncome,
			Rate:         rate,
		}
		if c.MaxIncome != nil {
			maxIncome, err := decimal.NewFromString(*c.MaxIncome)
			if err != nil {
				return nil, err
			}
			bracket.MaxIncome = &maxIncome
		}
		brackets[i] = bracket
	}
	return brackets, nil
}
