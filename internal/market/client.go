package market

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"MarketWrap/internal/cache"
	"MarketWrap/internal/model"
)

// Cache TTLs per data kind.
const (
	QuoteTTL = 120 * time.Second
	BarsTTL  = 45 * time.Minute
)

// Client serves quote and bar lookups from a TTL cache, falling back
// through the configured source chain on a miss. A nil result means no
// source could serve the request; callers never see provider errors.
type Client struct {
	quoteSources []QuoteSource
	barSources   []BarSource
	quotes       *cache.Cache[*model.Quote]
	bars         *cache.Cache[[]model.Bar]
	log          *zap.Logger
}

// NewClient creates a Client over the given source chains, tried in
// order. A nil clock defaults to the wall clock.
func NewClient(quoteSources []QuoteSource, barSources []BarSource, clock cache.Clock, logger *zap.Logger) *Client {
	return &Client{
		quoteSources: quoteSources,
		barSources:   barSources,
		quotes:       cache.New[*model.Quote](clock),
		bars:         cache.New[[]model.Bar](clock),
		log:          logger,
	}
}

// GetQuote returns the quote for ticker, or nil when no source has data.
func (c *Client) GetQuote(ctx context.Context, ticker string) *model.Quote {
	key := "quote:" + ticker
	if q, ok := c.quotes.Get(key); ok {
		return q
	}
	for _, s := range c.quoteSources {
		q, err := s.Quote(ctx, ticker)
		if err != nil {
			c.log.Warn("quote source failed",
				zap.String("source", s.Name()), zap.String("ticker", ticker), zap.Error(err))
			continue
		}
		if q == nil || q.Price == 0 {
			continue
		}
		c.quotes.Set(key, q, QuoteTTL)
		return q
	}
	return nil
}

// GetBars returns daily bars for ticker covering the range token
// (1d/5d/1m/3m), oldest first, or nil when no source has data.
func (c *Client) GetBars(ctx context.Context, ticker, rng string) []model.Bar {
	key := fmt.Sprintf("bars:%s:%s", ticker, rng)
	if b, ok := c.bars.Get(key); ok {
		return b
	}
	days := RangeDays(rng)
	for _, s := range c.barSources {
		bars, err := s.Bars(ctx, ticker, days)
		if err != nil {
			c.log.Warn("bar source failed",
				zap.String("source", s.Name()), zap.String("ticker", ticker), zap.Error(err))
			continue
		}
		if len(bars) == 0 {
			continue
		}
		c.bars.Set(key, bars, BarsTTL)
		return bars
	}
	return nil
}
