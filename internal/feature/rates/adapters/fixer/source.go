// Package fixer ingests the Fixer.io latest rates (the JSON base/rates-map
// format).
package fixer

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	ingestusecase "rates_backend/internal/feature/ingest/usecase"
	"rates_backend/internal/feature/rates/domain/entity"
	"rates_backend/internal/feature/rates/usecase"
	"rates_backend/internal/platform/httpfetch"
)

// The feed's base is EUR in practice; the display name matches what the
// other feeds would supply for it.
const baseName = "Euro"

type latestPayload struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// Parse decodes a base/rates-map payload. Symbols are returned sorted so
// processing order is stable.
func Parse(payload []byte) (string, []entity.Quote, error) {
	var body latestPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return "", nil, err
	}
	if body.Base == "" {
		return "", nil, errors.New("missing base currency")
	}

	symbols := make([]string, 0, len(body.Rates))
	for sym := range body.Rates {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	quotes := make([]entity.Quote, 0, len(symbols))
	for _, sym := range symbols {
		quotes = append(quotes, entity.Quote{
			BaseSymbol:  body.Base,
			BaseName:    baseName,
			QuoteSymbol: sym,
			QuoteName:   predefinedNames[sym],
			Rate:        body.Rates[sym],
		})
	}
	return body.Base, quotes, nil
}

// Source is the Fixer.io feed.
type Source struct {
	id       int
	name     string
	url      string
	client   *httpfetch.Client
	store    *usecase.RateStore
	schedule ingestusecase.Schedule
}

var _ ingestusecase.Source = (*Source)(nil)

func NewSource(id int, name, url string, client *httpfetch.Client, store *usecase.RateStore, schedule ingestusecase.Schedule) *Source {
	return &Source{
		id:       id,
		name:     name,
		url:      url,
		client:   client,
		store:    store,
		schedule: schedule,
	}
}

func (s *Source) ID() int                          { return s.id }
func (s *Source) Name() string                     { return s.name }
func (s *Source) Schedule() ingestusecase.Schedule { return s.schedule }

func (s *Source) LastFetched(ctx context.Context) (time.Time, error) {
	return s.store.LastFetched(ctx, s.id)
}

func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	return s.client.Get(ctx, s.url)
}

// Process stores quotes for every symbol that either already has a
// reference row or appears in the static name table. Unknown symbols with no
// known display name are skipped entirely on first sight.
func (s *Source) Process(ctx context.Context, payload []byte, now time.Time) (int, error) {
	_, quotes, err := Parse(payload)
	if err != nil {
		return 0, &ingestusecase.ParseError{Source: s.name, Err: err}
	}

	kept := make([]entity.Quote, 0, len(quotes))
	for _, q := range quotes {
		if q.QuoteName == "" {
			known, err := s.store.KnownSymbol(ctx, q.QuoteSymbol)
			if err != nil {
				return 0, &ingestusecase.ResolutionError{Symbol: q.QuoteSymbol, Err: err}
			}
			if !known {
				continue
			}
		}
		kept = append(kept, q)
	}

	return s.store.Store(ctx, kept, s.id, now)
}
