package news

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"MarketWrap/internal/cache"
	"MarketWrap/internal/model"
)

// NewsTTL bounds how long a ticker's news list is reused.
const NewsTTL = 15 * time.Minute

// Client serves news lookups from a TTL cache, falling back through the
// source chain on a miss. The first source that answers wins, even with
// zero articles; only a failed or unconfigured source yields to the next.
type Client struct {
	sources []Source
	cache   *cache.Cache[[]model.NewsItem]
	log     *zap.Logger
}

// NewClient creates a Client over the given chain, tried in order.
func NewClient(sources []Source, clock cache.Clock, logger *zap.Logger) *Client {
	return &Client{
		sources: sources,
		cache:   cache.New[[]model.NewsItem](clock),
		log:     logger,
	}
}

// GetNews returns deduplicated news for ticker. It never fails; total
// provider failure produces an empty list (which is cached too).
func (c *Client) GetNews(ctx context.Context, ticker string, daysBack int) []model.NewsItem {
	key := fmt.Sprintf("news:%s:%d", ticker, daysBack)
	if items, ok := c.cache.Get(key); ok {
		return items
	}
	var items []model.NewsItem
	for _, s := range c.sources {
		got, err := s.News(ctx, ticker, daysBack)
		if err != nil {
			c.log.Warn("news source failed",
				zap.String("source", s.Name()), zap.String("ticker", ticker), zap.Error(err))
			continue
		}
		if got == nil {
			continue
		}
		items = got
		break
	}
	items = dedupeByURL(items)
	if items == nil {
		items = []model.NewsItem{}
	}
	c.cache.Set(key, items, NewsTTL)
	return items
}
