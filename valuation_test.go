package tradingpost

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestSummarize(t *testing.T) {
	testCases := []struct {
		name     string
		position Position
		quote    Quote
		want     Summary
	}{
		{
			name:     "profit",
			position: Position{Quantity: 15, Average: G(2), Cost: G(30)},
			quote:    Quote{Buy: G(2.2), Sell: G(2.5)},
			want: Summary{
				Quantity:    15,
				Average:     G(2),
				CostBasis:   G(30),
				Quote:       Quote{Buy: G(2.2), Sell: G(2.5)},
				MarketValue: G(31.875),
				Profit:      G(1.875),
			},
		},
		{
			name:     "loss",
			position: Position{Quantity: 4, Average: G(1), Cost: G(4)},
			quote:    Quote{Buy: G(0.5), Sell: G(1)},
			want: Summary{
				Quantity:    4,
				Average:     G(1),
				CostBasis:   G(4),
				Quote:       Quote{Buy: G(0.5), Sell: G(1)},
				MarketValue: G(3.4),
				Profit:      G(-0.6),
			},
		},
		{
			name:     "nothing held",
			position: Position{},
			quote:    Quote{Buy: G(1), Sell: G(2)},
			want:     Summary{Quote: Quote{Buy: G(1), Sell: G(2)}},
		},
		{
			name:     "free lots",
			position: Position{Quantity: 10},
			quote:    Quote{Sell: G(1)},
			want: Summary{
				Quantity:    10,
				Quote:       Quote{Sell: G(1)},
				MarketValue: G(8.5),
				Profit:      G(8.5),
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Summarize(tc.position, tc.quote)
			if diff := cmp.Diff(tc.want, got, goldComparer); diff != "" {
				t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSummarize_ExactCostBasis(t *testing.T) {
	ledger := NewLedger()
	ledger.Add(100, mustLot(t, 1, 1))
	ledger.Add(100, mustLot(t, 1, 1))
	ledger.Add(100, mustLot(t, 1, 2))

	s := Summarize(ledger.Position(100), Quote{Sell: G(1)})
	if want := G(4); !s.CostBasis.Equal(want) {
		t.Errorf("CostBasis = %v, want %v", s.CostBasis, want)
	}
	if want := G(-1.45); !s.Profit.Equal(want) {
		t.Errorf("Profit = %v, want %v", s.Profit, want)
	}
}

func TestSummarize_Display(t *testing.T) {
	s := Summarize(Position{Quantity: 15, Average: G(2), Cost: G(30)}, Quote{Buy: G(2.2), Sell: G(2.5)})
	if got, want := s.MarketValue.Format(), "31g 87s 50c"; got != want {
		t.Errorf("MarketValue.Format() = %q, want %q", got, want)
	}
	if got, want := s.Profit.Format(), "1g 87s 50c"; got != want {
		t.Errorf("Profit.Format() = %q, want %q", got, want)
	}
}

func TestSummary_Gain(t *testing.T) {
	s := Summarize(Position{Quantity: 15, Average: G(2), Cost: G(30)}, Quote{Sell: G(2.5)})
	if got, want := s.Gain(), decimal.RequireFromString("0.0625"); !got.Equal(want) {
		t.Errorf("Gain() = %v, want %v", got, want)
	}
	if got := (Summary{}).Gain(); !got.IsZero() {
		t.Errorf("Gain() of an empty summary = %v, want 0", got)
	}
}

func TestQuote_NetSell(t *testing.T) {
	if got, want := (Quote{Sell: G(2.5)}).NetSell(), G(2.125); !got.Equal(want) {
		t.Errorf("NetSell() = %v, want %v", got, want)
	}
}

func TestNewReport(t *testing.T) {
	ledger := NewLedger()
	ledger.Add(100, mustLot(t, 10, 1.50))
	ledger.Add(100, mustLot(t, 5, 3.00))
	ledger.Add(200, mustLot(t, 4, 1))
	ledger.Add(300, mustLot(t, 2, 1))
	ledger.Add(400, mustLot(t, 1, 1))

	quotes := map[ItemID]Quote{
		100: {Buy: G(2.2), Sell: G(2.5)}, // +1.875
		200: {Buy: G(0.5), Sell: G(1)},   // -0.6
		400: {Buy: G(0.5), Sell: G(1)},   // -0.15
		999: {Buy: G(9), Sell: G(9)},     // not held
	}
	r := NewReport(ledger, quotes)

	var order []ItemID
	for _, s := range r.Items {
		order = append(order, s.Item)
	}
	if diff := cmp.Diff([]ItemID{100, 400, 200}, order); diff != "" {
		t.Errorf("Report.Items order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ItemID{300}, r.Missing); diff != "" {
		t.Errorf("Report.Missing mismatch (-want +got):\n%s", diff)
	}
	if want := G(35); !r.CostBasis.Equal(want) {
		t.Errorf("Report.CostBasis = %v, want %v", r.CostBasis, want)
	}
	if want := G(36.125); !r.MarketValue.Equal(want) {
		t.Errorf("Report.MarketValue = %v, want %v", r.MarketValue, want)
	}
	if want := G(1.125); !r.Profit.Equal(want) {
		t.Errorf("Report.Profit = %v, want %v", r.Profit, want)
	}
}

func TestNewReport_TiesByItem(t *testing.T) {
	ledger := NewLedger()
	for _, id := range []ItemID{30, 10, 20} {
		ledger.Add(id, mustLot(t, 1, 1))
	}
	quote := Quote{Sell: G(2)}
	r := NewReport(ledger, map[ItemID]Quote{10: quote, 20: quote, 30: quote})

	var order []ItemID
	for _, s := range r.Items {
		order = append(order, s.Item)
	}
	if diff := cmp.Diff([]ItemID{10, 20, 30}, order); diff != "" {
		t.Errorf("Report.Items order mismatch (-want +got):\n%s", diff)
	}
}

func TestNewReport_Empty(t *testing.T) {
	r := NewReport(NewLedger(), nil)
	if len(r.Items) != 0 || len(r.Missing) != 0 {
		t.Errorf("NewReport() of an empty ledger = %+v, want no items", r)
	}
	if !r.Profit.IsZero() || !r.Gain().IsZero() {
		t.Errorf("NewReport() of an empty ledger has profit %v, gain %v", r.Profit, r.Gain())
	}
}
