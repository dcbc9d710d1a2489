package tradingpost

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ItemID identifies an item in the game.
type ItemID int

func (id ItemID) String() string { return strconv.Itoa(int(id)) }

// ParseItemID parses a positive item identifier.
func ParseItemID(s string) (ItemID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidItem, s, err)
	}
	id := ItemID(n)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// Validate checks that the identifier is positive.
func (id ItemID) Validate() error {
	if id <= 0 {
		return fmt.Errorf("%w: identifier must be positive, got %d", ErrInvalidItem, id)
	}
	return nil
}

// Lot represents a single purchase of an item.
type Lot struct {
	Quantity int  // units acquired, at least one
	Price    Gold // paid per unit, never negative
}

// NewLot creates a validated lot.
func NewLot(quantity int, price Gold) (Lot, error) {
	l := Lot{Quantity: quantity, Price: price}
	return l, l.Validate()
}

// Validate checks the lot invariants.
func (l Lot) Validate() error {
	var errs error
	if l.Quantity < 1 {
		errs = errors.Join(errs, fmt.Errorf("%w: quantity must be at least 1, got %d", ErrInvalidLot, l.Quantity))
	}
	if l.Price.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("%w: price must not be negative, got %s", ErrInvalidLot, l.Price.Format()))
	}
	return errs
}

// Cost returns the total paid for the lot.
func (l Lot) Cost() Gold { return l.Price.Mul(l.Quantity) }

func (l Lot) MarshalJSON() ([]byte, error) {
	var o orderedObject
	o.Set("quantity", l.Quantity)
	o.Set("price", l.Price)
	return o.MarshalJSON()
}

// UnmarshalJSON reads a lot and rejects it unless both fields are present and
// valid.
func (l *Lot) UnmarshalJSON(data []byte) error {
	var temp struct {
		Quantity *json.Number `json:"quantity"`
		Price    *Gold        `json:"price"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	if temp.Quantity == nil {
		return fmt.Errorf("%w: missing quantity in %s", ErrInvalidLot, data)
	}
	if temp.Price == nil {
		return fmt.Errorf("%w: missing price in %s", ErrInvalidLot, data)
	}
	q, err := strconv.Atoi(temp.Quantity.String())
	if err != nil {
		return fmt.Errorf("%w: quantity must be an integer, got %s", ErrInvalidLot, temp.Quantity)
	}
	lot, err := NewLot(q, *temp.Price)
	if err != nil {
		return err
	}
	*l = lot
	return nil
}

// lots is the ordered sequence of purchases of one item.
type lots []Lot

// position computes the quantity held and the quantity-weighted average unit
// price of the lots.
func (l lots) position() Position {
	var quantity int
	var cost Gold
	for _, lot := range l {
		quantity += lot.Quantity
		cost = cost.Add(lot.Cost())
	}
	if quantity == 0 {
		return Position{}
	}
	return Position{Quantity: quantity, Average: cost.Div(quantity), Cost: cost}
}
