package tradingpost

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeLedger(t *testing.T) {
	ledger := NewLedger()
	ledger.Add(24277, mustLot(t, 1, 0.25))
	ledger.Add(100, mustLot(t, 10, 1.50))
	ledger.Add(100, mustLot(t, 5, 3.00))

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatalf("EncodeLedger() unexpected error: %v", err)
	}

	want := `{
  "100": [
    {
      "quantity": 10,
      "price": 1.5
    },
    {
      "quantity": 5,
      "price": 3
    }
  ],
  "24277": [
    {
      "quantity": 1,
      "price": 0.25
    }
  ]
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("EncodeLedger() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeLedger_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeLedger(&buf, NewLedger()); err != nil {
		t.Fatalf("EncodeLedger() unexpected error: %v", err)
	}
	if got, want := buf.String(), "{}\n"; got != want {
		t.Errorf("EncodeLedger() = %q, want %q", got, want)
	}
}

func TestDecodeLedger(t *testing.T) {
	input := `{"100": [{"quantity": 10, "price": 1.50}, {"price": 3, "quantity": 5}], "7": [{"quantity": 1, "price": 0}]}`
	ledger, err := DecodeLedger(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeLedger() unexpected error: %v", err)
	}

	if diff := cmp.Diff([]ItemID{7, 100}, ledger.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
	want := []Lot{mustLot(t, 10, 1.5), mustLot(t, 5, 3)}
	if diff := cmp.Diff(want, ledger.Lots(100), goldComparer); diff != "" {
		t.Errorf("Lots(100) mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeLedger_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantLot bool // the error is also an ErrInvalidLot
	}{
		{"empty", ``, false},
		{"not an object", `[]`, false},
		{"truncated", `{"100": [`, false},
		{"non numeric key", `{"abc": [{"quantity": 1, "price": 1}]}`, false},
		{"zero key", `{"0": [{"quantity": 1, "price": 1}]}`, false},
		{"empty lots", `{"100": []}`, false},
		{"lots not a list", `{"100": {"quantity": 1, "price": 1}}`, false},
		{"missing quantity", `{"100": [{"price": 1}]}`, true},
		{"missing price", `{"100": [{"quantity": 1}]}`, true},
		{"zero quantity", `{"100": [{"quantity": 0, "price": 1}]}`, true},
		{"fractional quantity", `{"100": [{"quantity": 1.5, "price": 1}]}`, true},
		{"negative price", `{"100": [{"quantity": 1, "price": -1}]}`, true},
		{"quoted price", `{"100": [{"quantity": 1, "price": "1.5"}]}`, false},
		{"signed key", `{"+5": [{"quantity": 1, "price": 1}]}`, false},
		{"padded key", `{"05": [{"quantity": 1, "price": 1}]}`, false},
		{"trailing data", `{"5": [{"quantity": 1, "price": 1}]} garbage`, false},
		{"second document", `{"5": [{"quantity": 1, "price": 1}]} {}`, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeLedger(strings.NewReader(tc.input))
			if err == nil {
				t.Fatalf("DecodeLedger(%q) expected an error", tc.input)
			}
			if tc.wantLot && !errors.Is(err, ErrInvalidLot) {
				t.Errorf("DecodeLedger(%q) error = %v, want ErrInvalidLot", tc.input, err)
			}
		})
	}
}

func TestLedgerRoundTrip(t *testing.T) {
	ledger := NewLedger()
	ledger.Add(19721, Lot{Quantity: 250, Price: FromCopper(1234)})
	ledger.Add(19721, Lot{Quantity: 3, Price: FromCopper(99)})
	ledger.Add(43773, Lot{Quantity: 1, Price: G(12.3456)})

	var first bytes.Buffer
	if err := EncodeLedger(&first, ledger); err != nil {
		t.Fatalf("EncodeLedger() unexpected error: %v", err)
	}
	decoded, err := DecodeLedger(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("DecodeLedger() unexpected error: %v", err)
	}
	var second bytes.Buffer
	if err := EncodeLedger(&second, decoded); err != nil {
		t.Fatalf("EncodeLedger() unexpected error: %v", err)
	}
	if diff := cmp.Diff(first.String(), second.String()); diff != "" {
		t.Errorf("re-encoded ledger mismatch (-want +got):\n%s", diff)
	}
}

func TestItemIDsDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeItemIDs(&buf, nil); err != nil {
		t.Fatalf("EncodeItemIDs(nil) unexpected error: %v", err)
	}
	if got, want := buf.String(), "[]\n"; got != want {
		t.Errorf("EncodeItemIDs(nil) = %q, want %q", got, want)
	}

	buf.Reset()
	ids := []ItemID{43773, 19721}
	if err := EncodeItemIDs(&buf, ids); err != nil {
		t.Fatalf("EncodeItemIDs() unexpected error: %v", err)
	}
	got, err := DecodeItemIDs(&buf)
	if err != nil {
		t.Fatalf("DecodeItemIDs() unexpected error: %v", err)
	}
	if diff := cmp.Diff(ids, got); diff != "" {
		t.Errorf("DecodeItemIDs() mismatch (-want +got):\n%s", diff)
	}

	for _, input := range []string{`{}`, `["a"]`, `[0]`, `[-3]`, `[1] [2]`} {
		if _, err := DecodeItemIDs(strings.NewReader(input)); err == nil {
			t.Errorf("DecodeItemIDs(%q) expected an error", input)
		}
	}
}

func TestCatalogDocument(t *testing.T) {
	items := []CatalogItem{{ID: 24277, Name: "Pile of Crystalline Dust"}, {ID: 19721, Name: "Glob of Ectoplasm"}}

	var buf bytes.Buffer
	if err := EncodeCatalog(&buf, items); err != nil {
		t.Fatalf("EncodeCatalog() unexpected error: %v", err)
	}
	want := `[
  {"id":19721,"name":"Glob of Ectoplasm"},
  {"id":24277,"name":"Pile of Crystalline Dust"}
]
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("EncodeCatalog() mismatch (-want +got):\n%s", diff)
	}

	got, err := DecodeCatalog(&buf)
	if err != nil {
		t.Fatalf("DecodeCatalog() unexpected error: %v", err)
	}
	if _, err := DecodeCatalog(strings.NewReader(`[] x`)); err == nil {
		t.Error("DecodeCatalog() with trailing data expected an error")
	}

	wantItems := []CatalogItem{items[1], items[0]}
	if diff := cmp.Diff(wantItems, got); diff != "" {
		t.Errorf("DecodeCatalog() mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := EncodeCatalog(&buf, nil); err != nil {
		t.Fatalf("EncodeCatalog(nil) unexpected error: %v", err)
	}
	if got, want := buf.String(), "[\n]\n"; got != want {
		t.Errorf("EncodeCatalog(nil) = %q, want %q", got, want)
	}
}
