package tradingpost

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
)

// DecodeLedger decodes a ledger document: a JSON object mapping stringified
// item identifiers to the ordered list of their lots, each lot being an
// object {"quantity": integer, "price": number}.
//
// Any deviation (unknown identifier format, empty lot list, invalid lot) makes
// the whole document invalid.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	var doc map[string]json.RawMessage
	if err := decodeDocument(r, &doc); err != nil {
		return nil, fmt.Errorf("invalid ledger document: %w", err)
	}

	ledger := NewLedger()
	for key, raw := range doc {
		id, err := ParseItemID(key)
		if err != nil {
			return nil, fmt.Errorf("invalid ledger document: %w", err)
		}
		if id.String() != key {
			return nil, fmt.Errorf("invalid ledger document: item key %q is not in canonical form %q", key, id.String())
		}
		if ledger.Has(id) {
			return nil, fmt.Errorf("invalid ledger document: item %v is defined twice", id)
		}
		var l lots
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, fmt.Errorf("invalid ledger document: item %v: %w", id, err)
		}
		if len(l) == 0 {
			return nil, fmt.Errorf("invalid ledger document: item %v has no lots", id)
		}
		ledger.items[id] = l
	}
	return ledger, nil
}

// EncodeLedger writes the ledger document in a canonical form: items in
// increasing identifier order, lots in their ledger order, indented by two
// spaces.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	var obj orderedObject
	for _, id := range ledger.Items() {
		obj.Set(id.String(), ledger.items[id])
	}
	raw, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}
	return writeIndented(w, raw)
}

// DecodeItemIDs decodes a JSON array of item identifiers.
func DecodeItemIDs(r io.Reader) ([]ItemID, error) {
	var ids []ItemID
	if err := decodeDocument(r, &ids); err != nil {
		return nil, fmt.Errorf("invalid item list document: %w", err)
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, fmt.Errorf("invalid item list document: %w", err)
		}
	}
	return ids, nil
}

// EncodeItemIDs writes a JSON array of item identifiers, in the given order.
func EncodeItemIDs(w io.Writer, ids []ItemID) error {
	if ids == nil {
		ids = []ItemID{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal item list: %w", err)
	}
	return writeIndented(w, raw)
}

// DecodeCatalog decodes a JSON array of {"id", "name"} objects.
func DecodeCatalog(r io.Reader) ([]CatalogItem, error) {
	var items []CatalogItem
	if err := decodeDocument(r, &items); err != nil {
		return nil, fmt.Errorf("invalid catalog document: %w", err)
	}
	return items, nil
}

// EncodeCatalog writes the catalog sorted by item identifier, one item per
// line.
func EncodeCatalog(w io.Writer, items []CatalogItem) error {
	items = slices.Clone(items)
	slices.SortFunc(items, func(a, b CatalogItem) int { return int(a.ID - b.ID) })
	if _, err := io.WriteString(w, "[\n"); err != nil {
		return err
	}
	for i, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal catalog item %v: %w", item.ID, err)
		}
		sep := ",\n"
		if i == len(items)-1 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(w, "  %s%s", raw, sep); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]\n")
	return err
}

// errTrailingData reports content after the JSON value of a document.
var errTrailingData = errors.New("unexpected data after the document")

// decodeDocument decodes the single JSON value of r into v.
func decodeDocument(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errTrailingData
	}
	return nil
}

func writeIndented(w io.Writer, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("failed to indent document: %w", err)
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}
