package usecase

import (
	"context"
	"time"

	ingestusecase "rates_backend/internal/feature/ingest/usecase"
	"rates_backend/internal/feature/rates/domain/entity"
)

// CurrencyRepository resolves symbols to durable currency reference rows.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CurrencyRepository interface {
	// GetOrCreate returns the reference row for symbol, inserting it when
	// absent. Insert-if-absent must be atomic under the unique symbol index.
	// A blank stored name is back-filled from a non-blank candidate name;
	// a non-blank stored name is never overwritten.
	GetOrCreate(ctx context.Context, symbol, name string) (entity.Currency, error)

	// Lookup returns the reference row for symbol if one exists.
	Lookup(ctx context.Context, symbol string) (entity.Currency, bool, error)
}

// RateRepository appends exchange-rate facts. Facts are append-only and are
// never deduplicated: re-running a cycle can write adjacent duplicates, and
// multiple facts per (base, quote, source) are the intended time series.
type RateRepository interface {
	AppendBatch(ctx context.Context, rates []entity.ExchangeRate) error
	// LatestTimestamp returns the newest fact timestamp for sourceID, or the
	// zero time when no fact exists.
	LatestTimestamp(ctx context.Context, sourceID int) (time.Time, error)
}

// RateStore は正規化済みのレートを参照エンティティに解決し、ファクトとして追記します。
type RateStore struct {
	currencies CurrencyRepository
	rates      RateRepository
}

// NewRateStore creates a new RateStore.
func NewRateStore(currencies CurrencyRepository, rates RateRepository) *RateStore {
	return &RateStore{currencies: currencies, rates: rates}
}

// Store resolves every quote and appends one fact per quote, all stamped with
// now. It returns the number of facts written. A resolution failure abandons
// the remaining quotes for this call.
func (s *RateStore) Store(ctx context.Context, quotes []entity.Quote, sourceID int, now time.Time) (int, error) {
	if len(quotes) == 0 {
		return 0, nil
	}

	// Resolve each distinct symbol once per call; the base side repeats for
	// every quote of a source.
	resolved := make(map[string]entity.Currency, len(quotes)+1)
	facts := make([]entity.ExchangeRate, 0, len(quotes))

	for _, q := range quotes {
		base, err := s.resolve(ctx, resolved, q.BaseSymbol, q.BaseName)
		if err != nil {
			return 0, &ingestusecase.ResolutionError{Symbol: q.BaseSymbol, Err: err}
		}
		quote, err := s.resolve(ctx, resolved, q.QuoteSymbol, q.QuoteName)
		if err != nil {
			return 0, &ingestusecase.ResolutionError{Symbol: q.QuoteSymbol, Err: err}
		}

		facts = append(facts, entity.ExchangeRate{
			BaseID:    base.ID,
			QuoteID:   quote.ID,
			Rate:      q.Rate,
			SourceID:  sourceID,
			Timestamp: now,
		})
	}

	if err := s.rates.AppendBatch(ctx, facts); err != nil {
		return 0, &ingestusecase.PersistenceError{Err: err}
	}
	return len(facts), nil
}

// KnownSymbol reports whether a reference row already exists for symbol.
func (s *RateStore) KnownSymbol(ctx context.Context, symbol string) (bool, error) {
	_, found, err := s.currencies.Lookup(ctx, symbol)
	return found, err
}

// LastFetched returns the newest fact timestamp for sourceID.
func (s *RateStore) LastFetched(ctx context.Context, sourceID int) (time.Time, error) {
	return s.rates.LatestTimestamp(ctx, sourceID)
}

func (s *RateStore) resolve(ctx context.Context, cache map[string]entity.Currency, symbol, name string) (entity.Currency, error) {
	if c, ok := cache[symbol]; ok {
		return c, nil
	}
	c, err := s.currencies.GetOrCreate(ctx, symbol, name)
	if err != nil {
		return entity.Currency{}, err
	}
	cache[symbol] = c
	return c, nil
}
