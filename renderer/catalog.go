package renderer

import (
	"github.com/etnz/tradingpost"
)

type catalogView struct {
	Query string
	Items []tradingpost.CatalogItem
}

// RenderSearch renders the catalog items matching query.
func RenderSearch(query string, items []tradingpost.CatalogItem) string {
	return renderTemplate("search", "search.md", nil, funcs(nil), catalogView{Query: query, Items: items})
}
