package tradingpost

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// FeeRetention is the fraction of a sale kept by the seller once the trading
// post took its 15% fee.
var FeeRetention = decimal.RequireFromString("0.85")

// Position is the holding of one item, independent of the market.
type Position struct {
	Quantity int  // sum of the lots' quantities
	Average  Gold // quantity-weighted mean of the lots' unit prices, zero without lots
	Cost     Gold // sum of the lots' costs
}

// CostBasis returns the total paid for the quantity held. It is kept as the
// exact sum of the lots' costs, since Average is rounded when not a finite
// decimal.
func (p Position) CostBasis() Gold { return p.Cost }

// Quote is the market price of one item, per unit.
type Quote struct {
	Buy  Gold // highest buy order
	Sell Gold // lowest sell listing
}

// NetSell returns what the seller keeps for one unit sold at the sell price.
func (q Quote) NetSell() Gold { return q.Sell.Scale(FeeRetention) }

// Summary values a position against a quote.
type Summary struct {
	Item        ItemID
	Quantity    int
	Average     Gold
	CostBasis   Gold
	Quote       Quote
	MarketValue Gold // quantity sold at the sell price, net of the fee
	Profit      Gold // MarketValue - CostBasis
}

// Summarize values the position against the quote. A position without
// quantity has no cost basis, no market value and no profit.
func Summarize(pos Position, quote Quote) Summary {
	s := Summary{Quantity: pos.Quantity, Average: pos.Average, Quote: quote}
	if pos.Quantity <= 0 {
		return s
	}
	s.CostBasis = pos.CostBasis()
	s.MarketValue = quote.NetSell().Mul(pos.Quantity)
	s.Profit = s.MarketValue.Sub(s.CostBasis)
	return s
}

// Gain returns the profit relative to the cost basis, zero when nothing was
// paid.
func (s Summary) Gain() decimal.Decimal { return gain(s.Profit, s.CostBasis) }

func gain(profit, cost Gold) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return profit.Ratio(cost)
}

// Report values every held item of a ledger.
type Report struct {
	Items       []Summary // by decreasing profit
	Missing     []ItemID  // held items without a quote, not valued
	CostBasis   Gold
	MarketValue Gold
	Profit      Gold
}

// NewReport values each item of the ledger having a quote. Items without a
// quote are listed in Missing and excluded from the totals.
func NewReport(ledger *Ledger, quotes map[ItemID]Quote) *Report {
	r := new(Report)
	for _, id := range ledger.Items() {
		quote, exists := quotes[id]
		if !exists {
			r.Missing = append(r.Missing, id)
			continue
		}
		s := Summarize(ledger.Position(id), quote)
		s.Item = id
		r.Items = append(r.Items, s)
		r.CostBasis = r.CostBasis.Add(s.CostBasis)
		r.MarketValue = r.MarketValue.Add(s.MarketValue)
		r.Profit = r.Profit.Add(s.Profit)
	}
	slices.SortStableFunc(r.Items, func(a, b Summary) int {
		if c := b.Profit.Cmp(a.Profit); c != 0 {
			return c
		}
		return cmp.Compare(a.Item, b.Item)
	})
	return r
}

// Gain returns the total profit relative to the total cost basis.
func (r *Report) Gain() decimal.Decimal { return gain(r.Profit, r.CostBasis) }
