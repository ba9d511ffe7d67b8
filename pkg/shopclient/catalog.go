package shopclient

import (
	"context"
	"sync"

	"github.com/Skotchmaster/storefront/pkg/store"
)

// Catalog caches the latest fetched product list. Overlapping refreshes are
// sequenced with a generation counter: each Refresh takes the next generation
// before fetching and only applies its response while it is still the newest
// one, so a slow response never overwrites a fresher list.
type Catalog struct {
	client *Client

	mu       sync.Mutex
	gen      uint64
	products []store.Product
}

func NewCatalog(client *Client) *Catalog {
	return &Catalog{client: client}
}

func (c *Catalog) Refresh(ctx context.Context, category string, page int) ([]store.Product, error) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	products, err := c.client.Products(ctx, category, page)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// a newer refresh already won; hand the caller its data anyway
		return products, nil
	}
	c.products = products
	return products, nil
}

// Products returns the most recently applied list.
func (c *Catalog) Products() []store.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]store.Product, len(c.products))
	copy(snapshot, c.products)
	return snapshot
}
