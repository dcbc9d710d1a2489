package tradingpost

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testBackend keeps documents in memory and counts writes.
type testBackend struct {
	mu      sync.Mutex
	docs    map[string][]byte
	puts    int
	failGet error
	failPut error
}

func newTestBackend() *testBackend {
	return &testBackend{docs: make(map[string][]byte)}
}

func (b *testBackend) Get(key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failGet != nil {
		return nil, b.failGet
	}
	data, exists := b.docs[key]
	if !exists {
		return nil, fmt.Errorf("document %q: %w", key, fs.ErrNotExist)
	}
	return bytes.Clone(data), nil
}

func (b *testBackend) Put(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failPut != nil {
		return b.failPut
	}
	b.docs[key] = bytes.Clone(data)
	b.puts++
	return nil
}

func (b *testBackend) doc(key string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.docs[key])
}

func TestStore_AddLotAndPosition(t *testing.T) {
	b := newTestBackend()
	s := NewStore(b)

	if err := s.AddLot(100, 10, G(1.50)); err != nil {
		t.Fatalf("AddLot() unexpected error: %v", err)
	}
	if err := s.AddLot(100, 5, G(3.00)); err != nil {
		t.Fatalf("AddLot() unexpected error: %v", err)
	}

	pos, err := s.Position(100)
	if err != nil {
		t.Fatalf("Position() unexpected error: %v", err)
	}
	if pos.Quantity != 15 || !pos.Average.Equal(G(2)) {
		t.Errorf("Position(100) = (%d, %v), want (15, 2)", pos.Quantity, pos.Average)
	}
	if b.puts != 2 {
		t.Errorf("AddLot() wrote %d times, want 2", b.puts)
	}

	// A new Store over the same backend sees the same ledger.
	lots, err := NewStore(b).Lots(100)
	if err != nil {
		t.Fatalf("Lots() unexpected error: %v", err)
	}
	want := []Lot{mustLot(t, 10, 1.5), mustLot(t, 5, 3)}
	if diff := cmp.Diff(want, lots, goldComparer); diff != "" {
		t.Errorf("Lots(100) mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_EmptyBackend(t *testing.T) {
	s := NewStore(newTestBackend())
	lots, err := s.Lots(100)
	if err != nil {
		t.Fatalf("Lots() unexpected error: %v", err)
	}
	if len(lots) != 0 {
		t.Errorf("Lots(100) = %v, want empty", lots)
	}
	pos, err := s.Position(100)
	if err != nil {
		t.Fatalf("Position() unexpected error: %v", err)
	}
	if pos != (Position{}) {
		t.Errorf("Position(100) = %+v, want the zero Position", pos)
	}
}

func TestStore_AddLotInvalid(t *testing.T) {
	testCases := []struct {
		name     string
		id       ItemID
		quantity int
		price    Gold
		want     error
	}{
		{"zero quantity", 100, 0, G(1), ErrInvalidLot},
		{"negative quantity", 100, -1, G(1), ErrInvalidLot},
		{"negative price", 100, 1, G(-1), ErrInvalidLot},
		{"zero item", 0, 1, G(1), ErrInvalidItem},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBackend()
			b.failGet = errors.New("must not be read")
			err := NewStore(b).AddLot(tc.id, tc.quantity, tc.price)
			if !errors.Is(err, tc.want) {
				t.Errorf("AddLot() error = %v, want %v", err, tc.want)
			}
			if b.puts != 0 {
				t.Errorf("AddLot() wrote %d times, want 0", b.puts)
			}
		})
	}
}

func TestStore_EditLot(t *testing.T) {
	b := newTestBackend()
	s := NewStore(b)
	s.AddLot(100, 10, G(1.50))
	s.AddLot(100, 5, G(3.00))

	changed, err := s.EditLot(100, 0, 20, G(1))
	if err != nil || !changed {
		t.Fatalf("EditLot(100, 0) = %v, %v, want true, nil", changed, err)
	}
	pos, _ := s.Position(100)
	// (20*1 + 5*3) / 25
	if pos.Quantity != 25 || !pos.Average.Equal(G(1.4)) {
		t.Errorf("Position(100) = (%d, %v), want (25, 1.4)", pos.Quantity, pos.Average)
	}

	if _, err := s.EditLot(100, 0, 0, G(1)); !errors.Is(err, ErrInvalidLot) {
		t.Errorf("EditLot() with zero quantity error = %v, want ErrInvalidLot", err)
	}
}

func TestStore_NoOpLeavesDocumentUntouched(t *testing.T) {
	b := newTestBackend()
	s := NewStore(b)
	s.AddLot(100, 10, G(1.50))
	before := b.doc(LedgerKey)
	puts := b.puts

	testCases := []struct {
		name string
		op   func() (bool, error)
	}{
		{"edit index out of range", func() (bool, error) { return s.EditLot(100, 1, 1, G(1)) }},
		{"edit negative index", func() (bool, error) { return s.EditLot(100, -1, 1, G(1)) }},
		{"edit unknown item", func() (bool, error) { return s.EditLot(42, 0, 1, G(1)) }},
		{"delete index out of range", func() (bool, error) { return s.DeleteLot(100, 1) }},
		{"delete unknown item", func() (bool, error) { return s.DeleteLot(42, 0) }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			changed, err := tc.op()
			if err != nil || changed {
				t.Errorf("got %v, %v, want false, nil", changed, err)
			}
		})
	}
	if b.puts != puts {
		t.Errorf("no-op operations wrote %d times", b.puts-puts)
	}
	if diff := cmp.Diff(before, b.doc(LedgerKey)); diff != "" {
		t.Errorf("document changed by no-op operations (-want +got):\n%s", diff)
	}
}

func TestStore_DeleteLastLot(t *testing.T) {
	b := newTestBackend()
	s := NewStore(b)
	s.AddLot(100, 10, G(1.50))
	s.AddLot(100, 5, G(3.00))

	for range 2 {
		changed, err := s.DeleteLot(100, 0)
		if err != nil || !changed {
			t.Fatalf("DeleteLot(100, 0) = %v, %v, want true, nil", changed, err)
		}
	}
	if got, want := b.doc(LedgerKey), "{}\n"; got != want {
		t.Errorf("ledger document = %q, want %q", got, want)
	}
	ledger, err := s.Ledger()
	if err != nil {
		t.Fatalf("Ledger() unexpected error: %v", err)
	}
	if ledger.Has(100) {
		t.Error("Has(100) = true after deleting its last lot")
	}
}

func TestStore_AddLotWeightedMean(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewStore(newTestBackend())
	var quantity int
	var cost float64
	for range 100 {
		q := 1 + rng.Intn(250)
		p := rng.Float64() * 500
		if err := s.AddLot(19721, q, G(p)); err != nil {
			t.Fatalf("AddLot() unexpected error: %v", err)
		}
		quantity += q
		cost += float64(q) * p
	}
	pos, err := s.Position(19721)
	if err != nil {
		t.Fatalf("Position() unexpected error: %v", err)
	}
	if pos.Quantity != quantity {
		t.Errorf("Quantity = %d, want %d", pos.Quantity, quantity)
	}
	if want := cost / float64(quantity); math.Abs(pos.Average.Float64()-want) > 1e-9 {
		t.Errorf("Average = %v, want %v", pos.Average.Float64(), want)
	}
}

func TestStore_StorageErrors(t *testing.T) {
	broken := errors.New("disk on fire")

	t.Run("read", func(t *testing.T) {
		b := newTestBackend()
		b.failGet = broken
		_, err := NewStore(b).Lots(100)
		assertStorageError(t, err, "read", broken)
	})
	t.Run("write", func(t *testing.T) {
		b := newTestBackend()
		b.failPut = broken
		err := NewStore(b).AddLot(100, 1, G(1))
		assertStorageError(t, err, "write", broken)
	})
	for _, doc := range []string{"", "{", "[]", `{"100": []}`} {
		t.Run("decode "+doc, func(t *testing.T) {
			b := newTestBackend()
			b.docs[LedgerKey] = []byte(doc)
			_, err := NewStore(b).Position(100)
			assertStorageError(t, err, "decode", nil)
		})
	}
}

func assertStorageError(t *testing.T, err error, op string, cause error) {
	t.Helper()
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("error = %v, want ErrStorage", err)
	}
	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("error = %v, want a *StorageError", err)
	}
	if serr.Op != op {
		t.Errorf("StorageError.Op = %q, want %q", serr.Op, op)
	}
	if cause != nil && !errors.Is(err, cause) {
		t.Errorf("error = %v, want it to wrap %v", err, cause)
	}
}

func TestStore_ConcurrentAddLot(t *testing.T) {
	b := newTestBackend()
	s := NewStore(b)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.AddLot(100, 1, G(1)); err != nil {
				t.Errorf("AddLot() unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	pos, err := s.Position(100)
	if err != nil {
		t.Fatalf("Position() unexpected error: %v", err)
	}
	if pos.Quantity != 20 {
		t.Errorf("Position(100).Quantity = %d, want 20", pos.Quantity)
	}
}

func TestStore_TrackedItems(t *testing.T) {
	b := newTestBackend()
	s := NewStore(b)

	got, err := s.TrackedItems()
	if err != nil {
		t.Fatalf("TrackedItems() unexpected error: %v", err)
	}
	if diff := cmp.Diff(DefaultTrackedItems, got); diff != "" {
		t.Errorf("TrackedItems() mismatch (-want +got):\n%s", diff)
	}
	if b.puts != 0 {
		t.Errorf("TrackedItems() wrote %d times, want 0", b.puts)
	}

	if changed, err := s.Track(12345); err != nil || !changed {
		t.Fatalf("Track(12345) = %v, %v, want true, nil", changed, err)
	}
	if changed, err := s.Track(12345); err != nil || changed {
		t.Errorf("Track(12345) twice = %v, %v, want false, nil", changed, err)
	}
	if changed, err := s.Untrack(24277); err != nil || !changed {
		t.Errorf("Untrack(24277) = %v, %v, want true, nil", changed, err)
	}
	if changed, err := s.Untrack(1); err != nil || changed {
		t.Errorf("Untrack(1) = %v, %v, want false, nil", changed, err)
	}
	if _, err := s.Track(-5); !errors.Is(err, ErrInvalidItem) {
		t.Errorf("Track(-5) error = %v, want ErrInvalidItem", err)
	}

	got, err = NewStore(b).TrackedItems()
	if err != nil {
		t.Fatalf("TrackedItems() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]ItemID{19721, 43773, 12345}, got); diff != "" {
		t.Errorf("TrackedItems() mismatch (-want +got):\n%s", diff)
	}
	if b.puts != 2 {
		t.Errorf("tracking wrote %d times, want 2", b.puts)
	}
}

func TestStore_DefaultTrackedItemsIsNotShared(t *testing.T) {
	s := NewStore(newTestBackend())
	got, _ := s.TrackedItems()
	got[0] = 1
	if DefaultTrackedItems[0] == 1 {
		t.Error("TrackedItems() returned DefaultTrackedItems itself")
	}
}

func TestStore_Catalog(t *testing.T) {
	s := NewStore(newTestBackend())
	got, err := s.Catalog()
	if err != nil {
		t.Fatalf("Catalog() unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Catalog() = %v, want empty", got)
	}

	items := []CatalogItem{{ID: 2, Name: "b"}, {ID: 1, Name: "a"}}
	if err := s.SaveCatalog(items); err != nil {
		t.Fatalf("SaveCatalog() unexpected error: %v", err)
	}
	got, err = s.Catalog()
	if err != nil {
		t.Fatalf("Catalog() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]CatalogItem{items[1], items[0]}, got); diff != "" {
		t.Errorf("Catalog() mismatch (-want +got):\n%s", diff)
	}
}
