package tradingpost

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLot reports a lot rejected before any mutation: a quantity
	// lower than one or a negative price.
	ErrInvalidLot = errors.New("invalid lot")
	// ErrInvalidItem reports an item identifier that is not positive.
	ErrInvalidItem = errors.New("invalid item")
	// ErrStorage matches every *StorageError.
	ErrStorage = errors.New("storage error")
)

// StorageError reports a failure to load or persist a document.
type StorageError struct {
	Op  string // read, decode, encode or write
	Key string // document key
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("cannot %s document %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrStorage) true for any StorageError.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// QuoteError reports a failure to fetch the market quote of an item.
type QuoteError struct {
	Item ItemID
	Err  error
}

func (e *QuoteError) Error() string {
	return fmt.Sprintf("cannot fetch quote for item %v: %v", e.Item, e.Err)
}

func (e *QuoteError) Unwrap() error { return e.Err }
