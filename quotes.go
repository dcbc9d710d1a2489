package tradingpost

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// QuoteSource fetches market quotes, typically from a remote price API.
type QuoteSource interface {
	Quote(ctx context.Context, id ItemID) (Quote, error)
}

// FetchQuotes fetches the quotes of ids from src, at most limit at a time
// (unbounded if limit <= 0).
//
// Failures do not stop the other fetches: the quotes that could be fetched
// are always returned, along with the join of a *QuoteError per failed item.
func FetchQuotes(ctx context.Context, src QuoteSource, ids []ItemID, limit int) (map[ItemID]Quote, error) {
	var (
		mu     sync.Mutex
		quotes = make(map[ItemID]Quote, len(ids))
		errs   error
	)
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, id := range ids {
		g.Go(func() error {
			q, err := src.Quote(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = errors.Join(errs, &QuoteError{Item: id, Err: err})
				return nil
			}
			quotes[id] = q
			return nil
		})
	}
	g.Wait()
	return quotes, errs
}
