package tradingpost

import "strings"

// CatalogItem is an item that can be traded on the trading post.
type CatalogItem struct {
	ID   ItemID `json:"id"`
	Name string `json:"name"`
}

// Search returns the catalog items whose name contains query, ignoring case,
// in catalog order.
func Search(items []CatalogItem, query string) []CatalogItem {
	query = strings.ToLower(strings.TrimSpace(query))
	var found []CatalogItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), query) {
			found = append(found, item)
		}
	}
	return found
}

// Names indexes the catalog names by item.
func Names(items []CatalogItem) map[ItemID]string {
	names := make(map[ItemID]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}
	return names
}
