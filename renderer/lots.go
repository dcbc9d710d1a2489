package renderer

import "github.com/etnz/tradingpost"

type lotsView struct {
	Item     tradingpost.ItemID
	Lots     []tradingpost.Lot
	Position tradingpost.Position
}

// RenderLots renders the lots of an item, with their index, and the resulting
// position.
func RenderLots(id tradingpost.ItemID, lots []tradingpost.Lot, position tradingpost.Position, names Names) string {
	partials := map[string]string{
		"position_body": "position_body.md",
	}
	return renderTemplate("lots", "lots.md", partials, funcs(names), lotsView{Item: id, Lots: lots, Position: position})
}

// RenderPosition renders the position of an item.
func RenderPosition(id tradingpost.ItemID, position tradingpost.Position, names Names) string {
	partials := map[string]string{
		"position_body": "position_body.md",
	}
	return renderTemplate("position", "position.md", partials, funcs(names), lotsView{Item: id, Position: position})
}
