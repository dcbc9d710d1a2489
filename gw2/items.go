package gw2

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/etnz/tradingpost"
	"golang.org/x/sync/errgroup"
)

// Item is the metadata of an item.
type Item struct {
	ID   tradingpost.ItemID `json:"id"`
	Name string             `json:"name"`
	Icon string             `json:"icon"`
}

// batchSize is the maximum number of ids the API accepts in one request.
const batchSize = 200

// Item fetches the metadata of the item. The name is "Unknown" if the API has
// none.
func (c *Client) Item(ctx context.Context, id tradingpost.ItemID) (Item, error) {
	var item Item
	addr := c.endpoint(fmt.Sprintf("/v2/items/%d", id), nil, true)
	if err := c.jwget(ctx, addr, &item); err != nil {
		return Item{}, fmt.Errorf("error retrieving item %v: %w", id, err)
	}
	item.ID = id
	if item.Name == "" {
		item.Name = "Unknown"
	}
	return item, nil
}

// Items fetches the metadata of many items, batchSize at a time. Items
// unknown to the API are missing from the result.
func (c *Client) Items(ctx context.Context, ids []tradingpost.ItemID) ([]Item, error) {
	var (
		mu    sync.Mutex
		items []Item
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for batch := range slices.Chunk(ids, batchSize) {
		g.Go(func() error {
			var found []Item
			query := url.Values{"ids": {joinIDs(batch)}}
			if err := c.jwget(ctx, c.endpoint("/v2/items", query, true), &found); err != nil {
				return fmt.Errorf("error retrieving items: %w", err)
			}
			mu.Lock()
			defer mu.Unlock()
			items = append(items, found...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slices.SortFunc(items, func(a, b Item) int { return int(a.ID - b.ID) })
	return items, nil
}

// Catalog lists every named tradable item.
func (c *Client) Catalog(ctx context.Context) ([]tradingpost.CatalogItem, error) {
	var tradable []tradingpost.ItemID
	if err := c.jwget(ctx, c.endpoint("/v2/commerce/prices", nil, false), &tradable); err != nil {
		return nil, fmt.Errorf("error retrieving tradable items: %w", err)
	}
	var all []tradingpost.ItemID
	if err := c.jwget(ctx, c.endpoint("/v2/items", nil, false), &all); err != nil {
		return nil, fmt.Errorf("error retrieving items: %w", err)
	}

	// only tradable items known to the item endpoint are named.
	known := make(map[tradingpost.ItemID]bool, len(all))
	for _, id := range all {
		known[id] = true
	}
	ids := slices.DeleteFunc(slices.Clone(tradable), func(id tradingpost.ItemID) bool { return !known[id] })
	slices.Sort(ids)

	items, err := c.Items(ctx, ids)
	if err != nil {
		return nil, err
	}
	catalog := make([]tradingpost.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		catalog = append(catalog, tradingpost.CatalogItem{ID: item.ID, Name: item.Name})
	}
	return catalog, nil
}

func joinIDs(ids []tradingpost.ItemID) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = strconv.Itoa(int(id))
	}
	return strings.Join(s, ",")
}
