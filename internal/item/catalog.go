package item

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/text/unicode/norm"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/logger"
	"github.com/hunter-yen/hunter-server/internal/metrics"
	"github.com/hunter-yen/hunter-server/internal/repository"
)

// Catalog is a read-through cache over the item repository.
// Entries expire after the TTL; Invalidate and Purge drop them early.
type Catalog struct {
	repo   repository.Item
	byID   *expirable.LRU[string, domain.Item]
	byName *expirable.LRU[string, string]
}

// NewCatalog creates a catalog holding at most size items for ttl
func NewCatalog(repo repository.Item, size int, ttl time.Duration) *Catalog {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Catalog{
		repo:   repo,
		byID:   expirable.NewLRU[string, domain.Item](size, nil, ttl),
		byName: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

// NameKey normalizes an item name for lookups: NFC, trimmed, case-folded
func NameKey(name string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(name)))
}

// Get returns the item with itemID
func (c *Catalog) Get(ctx context.Context, itemID string) (*domain.Item, error) {
	if it, ok := c.byID.Get(itemID); ok {
		metrics.ItemCacheHits.Inc()
		return &it, nil
	}
	metrics.ItemCacheMisses.Inc()

	it, err := c.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	c.put(*it)
	return it, nil
}

// GetByName returns the item whose display name matches name
func (c *Catalog) GetByName(ctx context.Context, name string) (*domain.Item, error) {
	if id, ok := c.byName.Get(NameKey(name)); ok {
		return c.Get(ctx, id)
	}
	metrics.ItemCacheMisses.Inc()

	it, err := c.repo.GetItemByName(ctx, name)
	if err != nil {
		return nil, err
	}
	c.put(*it)
	return it, nil
}

// DisplayName returns the item's name, or the ID when it cannot be resolved
func (c *Catalog) DisplayName(ctx context.Context, itemID string) string {
	it, err := c.Get(ctx, itemID)
	if err != nil {
		logger.FromContext(ctx).Debug(LogMsgItemNameFallback, "item_id", itemID, "error", err)
		return itemID
	}
	return it.Name
}

// List reads the full catalog from storage and warms the cache
func (c *Catalog) List(ctx context.Context) ([]domain.Item, error) {
	items, err := c.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		c.put(it)
	}
	return items, nil
}

// Invalidate drops one item from the cache
func (c *Catalog) Invalidate(itemID string) {
	if it, ok := c.byID.Peek(itemID); ok {
		c.byName.Remove(NameKey(it.Name))
	}
	c.byID.Remove(itemID)
}

// Purge empties the cache
func (c *Catalog) Purge(ctx context.Context) {
	c.byID.Purge()
	c.byName.Purge()
	logger.FromContext(ctx).Info(LogMsgCachePurged)
}

// Len reports the number of cached items
func (c *Catalog) Len() int {
	return c.byID.Len()
}

func (c *Catalog) put(it domain.Item) {
	c.byID.Add(it.ID, it)
	c.byName.Add(NameKey(it.Name), it.ID)
}
