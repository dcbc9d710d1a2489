package tradingpost

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"slices"
	"sync"
)

// Keys of the documents kept by a Store.
const (
	LedgerKey  = "portfolio"
	TrackedKey = "tracked_items"
	CatalogKey = "all_items"
)

// DefaultTrackedItems is the tracked list until one is saved.
var DefaultTrackedItems = []ItemID{19721, 24277, 43773}

// Backend persists whole documents by key.
//
// Get returns an error matching fs.ErrNotExist when no document was ever put
// under key. Put replaces the document atomically: a concurrent or later Get
// sees either the previous or the new document, never a partial one.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
}

// Store provides durable operations on the ledger, the tracked items and the
// catalog, each kept as a single document in a Backend.
//
// Every operation reads the current document, and every mutation writes it
// back before returning. Mutations are serialized, so a Store can be shared
// by concurrent callers of the same process.
type Store struct {
	mu      sync.Mutex
	backend Backend
}

// NewStore creates a Store persisting into b.
func NewStore(b Backend) *Store {
	return &Store{backend: b}
}

// load reads and decodes the document key. It returns false without error if
// the document does not exist yet.
func (s *Store) load(key string, decode func(io.Reader) error) (bool, error) {
	data, err := s.backend.Get(key)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &StorageError{Op: "read", Key: key, Err: err}
	}
	if err := decode(bytes.NewReader(data)); err != nil {
		return false, &StorageError{Op: "decode", Key: key, Err: err}
	}
	return true, nil
}

// save encodes and writes the document key.
func (s *Store) save(key string, encode func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return &StorageError{Op: "encode", Key: key, Err: err}
	}
	if err := s.backend.Put(key, buf.Bytes()); err != nil {
		return &StorageError{Op: "write", Key: key, Err: err}
	}
	return nil
}

func (s *Store) ledger() (*Ledger, error) {
	ledger := NewLedger()
	_, err := s.load(LedgerKey, func(r io.Reader) (err error) {
		ledger, err = DecodeLedger(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ledger, nil
}

// updateLedger applies fn to the current ledger and persists it when fn
// reports a change.
func (s *Store) updateLedger(fn func(*Ledger) (bool, error)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.ledger()
	if err != nil {
		return false, err
	}
	changed, err := fn(ledger)
	if err != nil || !changed {
		return false, err
	}
	if err := s.save(LedgerKey, func(w io.Writer) error { return EncodeLedger(w, ledger) }); err != nil {
		return false, err
	}
	return true, nil
}

// Ledger returns a snapshot of the ledger.
func (s *Store) Ledger() (*Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger()
}

// AddLot appends a purchase of quantity units at price each to the item's lots.
// An invalid item or lot is rejected before anything is read or written.
func (s *Store) AddLot(id ItemID, quantity int, price Gold) error {
	if err := id.Validate(); err != nil {
		return err
	}
	lot, err := NewLot(quantity, price)
	if err != nil {
		return err
	}
	_, err = s.updateLedger(func(l *Ledger) (bool, error) {
		return true, l.Add(id, lot)
	})
	return err
}

// EditLot replaces the quantity and price of the lot at index in the item's
// lots.
//
// It returns false, without error and without writing anything, when the item
// has no lots or the index is out of range.
func (s *Store) EditLot(id ItemID, index int, quantity int, price Gold) (bool, error) {
	lot, err := NewLot(quantity, price)
	if err != nil {
		return false, err
	}
	return s.updateLedger(func(l *Ledger) (bool, error) {
		return l.Edit(id, index, lot)
	})
}

// DeleteLot removes the lot at index in the item's lots, and the item with its
// last lot.
//
// It returns false, without error and without writing anything, when the item
// has no lots or the index is out of range.
func (s *Store) DeleteLot(id ItemID, index int) (bool, error) {
	return s.updateLedger(func(l *Ledger) (bool, error) {
		return l.Delete(id, index), nil
	})
}

// Lots returns the item's lots in insertion order, empty if the item is
// untracked.
func (s *Store) Lots(id ItemID) ([]Lot, error) {
	ledger, err := s.Ledger()
	if err != nil {
		return nil, err
	}
	return ledger.Lots(id), nil
}

// Position returns the quantity held and the average unit price of the item,
// the zero Position if it has no lots.
func (s *Store) Position(id ItemID) (Position, error) {
	ledger, err := s.Ledger()
	if err != nil {
		return Position{}, err
	}
	return ledger.Position(id), nil
}

func (s *Store) tracked() ([]ItemID, error) {
	var ids []ItemID
	found, err := s.load(TrackedKey, func(r io.Reader) (err error) {
		ids, err = DecodeItemIDs(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return slices.Clone(DefaultTrackedItems), nil
	}
	return ids, nil
}

// TrackedItems returns the tracked items in the order they were tracked, or
// DefaultTrackedItems if the list was never saved.
func (s *Store) TrackedItems() ([]ItemID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracked()
}

// Track appends the item to the tracked items, unless it is already tracked.
func (s *Store) Track(id ItemID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}
	return s.updateTracked(func(ids []ItemID) ([]ItemID, bool) {
		if slices.Contains(ids, id) {
			return ids, false
		}
		return append(ids, id), true
	})
}

// Untrack removes the item from the tracked items. It returns false if the
// item was not tracked.
func (s *Store) Untrack(id ItemID) (bool, error) {
	return s.updateTracked(func(ids []ItemID) ([]ItemID, bool) {
		i := slices.Index(ids, id)
		if i < 0 {
			return ids, false
		}
		return slices.Delete(ids, i, i+1), true
	})
}

func (s *Store) updateTracked(fn func([]ItemID) ([]ItemID, bool)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.tracked()
	if err != nil {
		return false, err
	}
	ids, changed := fn(ids)
	if !changed {
		return false, nil
	}
	if err := s.save(TrackedKey, func(w io.Writer) error { return EncodeItemIDs(w, ids) }); err != nil {
		return false, err
	}
	return true, nil
}

// Catalog returns the saved catalog of tradable items, empty if it was never
// saved.
func (s *Store) Catalog() ([]CatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []CatalogItem
	_, err := s.load(CatalogKey, func(r io.Reader) (err error) {
		items, err = DecodeCatalog(r)
		return err
	})
	return items, err
}

// SaveCatalog replaces the saved catalog.
func (s *Store) SaveCatalog(items []CatalogItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(CatalogKey, func(w io.Writer) error { return EncodeCatalog(w, items) })
}
