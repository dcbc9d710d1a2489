package renderer

import (
	"bytes"

	"github.com/etnz/tradingpost"
	md "github.com/nao1215/markdown"
)

// PricesMarkdown renders the current quotes of the items, in the given order.
// Items without a quote are shown without prices.
func PricesMarkdown(ids []tradingpost.ItemID, quotes map[tradingpost.ItemID]tradingpost.Quote, names Names) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Tracked Items")
	if len(ids) == 0 {
		doc.PlainText("No tracked items.")
		return doc.String()
	}

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		q, ok := quotes[id]
		if !ok {
			rows = append(rows, []string{id.String(), names.name(id), "-", "-", "-"})
			continue
		}
		rows = append(rows, []string{id.String(), names.name(id), q.Buy.Format(), q.Sell.Format(), q.NetSell().Format()})
	}
	doc.Table(md.TableSet{
		Header: []string{"ID", "Item", "Buy", "Sell", "Net Sell"},
		Rows:   rows,
	})
	return doc.String()
}
