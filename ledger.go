package tradingpost

import (
	"maps"
	"slices"
)

// Ledger represents the purchase lots of every tracked item.
//
// Lots of an item are kept in insertion order and addressed by their index in
// that order. An item present in the ledger always has at least one lot.
type Ledger struct {
	items map[ItemID]lots
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{items: make(map[ItemID]lots)}
}

// Add appends a lot to the item's lots.
func (l *Ledger) Add(id ItemID, lot Lot) error {
	if err := lot.Validate(); err != nil {
		return err
	}
	l.items[id] = append(l.items[id], lot)
	return nil
}

// Edit replaces the lot at index in the item's lots.
//
// It returns false, and leaves the ledger untouched, if the item is unknown or
// the index out of range.
func (l *Ledger) Edit(id ItemID, index int, lot Lot) (bool, error) {
	if err := lot.Validate(); err != nil {
		return false, err
	}
	current, exists := l.items[id]
	if !exists || index < 0 || index >= len(current) {
		return false, nil
	}
	current[index] = lot
	return true, nil
}

// Delete removes the lot at index in the item's lots. The item itself is
// removed with its last lot.
//
// It returns false, and leaves the ledger untouched, if the item is unknown or
// the index out of range.
func (l *Ledger) Delete(id ItemID, index int) bool {
	current, exists := l.items[id]
	if !exists || index < 0 || index >= len(current) {
		return false
	}
	current = slices.Delete(current, index, index+1)
	if len(current) == 0 {
		delete(l.items, id)
		return true
	}
	l.items[id] = current
	return true
}

// Lots returns a copy of the item's lots, empty if the item is unknown.
func (l *Ledger) Lots(id ItemID) []Lot {
	return slices.Clone(l.items[id])
}

// Position returns the quantity held and average unit price of the item.
// It is the zero Position for an unknown item.
func (l *Ledger) Position(id ItemID) Position {
	return l.items[id].position()
}

// Has reports whether the item has lots in the ledger.
func (l *Ledger) Has(id ItemID) bool {
	_, exists := l.items[id]
	return exists
}

// Items returns the items with lots, in increasing identifier order.
func (l *Ledger) Items() []ItemID {
	return slices.Sorted(maps.Keys(l.items))
}

// Len returns the number of items with lots.
func (l *Ledger) Len() int { return len(l.items) }
