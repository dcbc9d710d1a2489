// Package storagetest checks that a tradingpost.Backend behaves as a Store
// expects.
package storagetest

import (
	"errors"
	"io/fs"
	"sync"
	"testing"

	"github.com/etnz/tradingpost"
)

// Run runs the backend conformance tests against b, that must be empty.
func Run(t *testing.T, b tradingpost.Backend) {
	t.Helper()

	t.Run("missing", func(t *testing.T) {
		_, err := b.Get("missing")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Get(missing) error = %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("put then get", func(t *testing.T) {
		if err := b.Put("doc", []byte("first")); err != nil {
			t.Fatalf("Put() unexpected error: %v", err)
		}
		if err := b.Put("doc", []byte("second")); err != nil {
			t.Fatalf("Put() unexpected error: %v", err)
		}
		got, err := b.Get("doc")
		if err != nil {
			t.Fatalf("Get() unexpected error: %v", err)
		}
		if string(got) != "second" {
			t.Errorf("Get() = %q, want %q", got, "second")
		}
	})

	t.Run("empty document", func(t *testing.T) {
		if err := b.Put("empty", []byte{}); err != nil {
			t.Fatalf("Put() unexpected error: %v", err)
		}
		got, err := b.Get("empty")
		if err != nil {
			t.Fatalf("Get() unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Get() = %q, want empty", got)
		}
	})

	t.Run("get returns a copy", func(t *testing.T) {
		data := []byte("original")
		if err := b.Put("copy", data); err != nil {
			t.Fatalf("Put() unexpected error: %v", err)
		}
		data[0] = 'X'
		got, _ := b.Get("copy")
		if string(got) != "original" {
			t.Errorf("Get() = %q after mutating the input, want %q", got, "original")
		}
	})

	t.Run("concurrent puts", func(t *testing.T) {
		docs := []string{"aaaaaaaa", "bbbbbbbb", "cccccccc"}
		var wg sync.WaitGroup
		for i := range 30 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := b.Put("race", []byte(docs[i%len(docs)])); err != nil {
					t.Errorf("Put() unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()
		got, err := b.Get("race")
		if err != nil {
			t.Fatalf("Get() unexpected error: %v", err)
		}
		valid := false
		for _, d := range docs {
			valid = valid || string(got) == d
		}
		if !valid {
			t.Errorf("Get() = %q, want one of the documents put", got)
		}
	})

	t.Run("store", func(t *testing.T) {
		s := tradingpost.NewStore(b)
		if err := s.AddLot(100, 10, tradingpost.G(1.5)); err != nil {
			t.Fatalf("AddLot() unexpected error: %v", err)
		}
		if err := s.AddLot(100, 5, tradingpost.G(3)); err != nil {
			t.Fatalf("AddLot() unexpected error: %v", err)
		}
		pos, err := tradingpost.NewStore(b).Position(100)
		if err != nil {
			t.Fatalf("Position() unexpected error: %v", err)
		}
		if pos.Quantity != 15 || !pos.Average.Equal(tradingpost.G(2)) {
			t.Errorf("Position(100) = (%d, %v), want (15, 2)", pos.Quantity, pos.Average)
		}
	})
}
