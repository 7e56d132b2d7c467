// Package nbp ingests the NBP exchange-rate tables (the JSON
// table-of-rates format published at api.nbp.pl).
package nbp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	ingestusecase "rates_backend/internal/feature/ingest/usecase"
	"rates_backend/internal/feature/rates/domain/entity"
	"rates_backend/internal/feature/rates/usecase"
	"rates_backend/internal/platform/httpfetch"
)

// NBP publishes rates against its home currency.
const (
	BaseSymbol = "PLN"
	BaseName   = "złoty polski"
)

type exchangeTable struct {
	Table         string      `json:"table"`
	No            string      `json:"no"`
	EffectiveDate string      `json:"effectiveDate"`
	Rates         []tableRate `json:"rates"`
}

type tableRate struct {
	Currency string          `json:"currency"`
	Code     string          `json:"code"`
	Mid      decimal.Decimal `json:"mid"`
}

// Normalize maps a table payload to canonical quotes: each entry becomes one
// quote of entry code against PLN, mid quote-units (PLN) per base unit.
// Entries with a blank name or code are skipped and returned as warnings.
func Normalize(payload []byte) ([]entity.Quote, []string, error) {
	var tables []exchangeTable
	if err := json.Unmarshal(payload, &tables); err != nil {
		return nil, nil, err
	}

	var quotes []entity.Quote
	var warnings []string
	for _, table := range tables {
		for _, rate := range table.Rates {
			if rate.Currency == "" || rate.Code == "" {
				warnings = append(warnings, fmt.Sprintf("incomplete entry: currency=%q code=%q", rate.Currency, rate.Code))
				continue
			}
			quotes = append(quotes, entity.Quote{
				BaseSymbol:  rate.Code,
				BaseName:    rate.Currency,
				QuoteSymbol: BaseSymbol,
				QuoteName:   BaseName,
				Rate:        rate.Mid,
			})
		}
	}
	return quotes, warnings, nil
}

// Source is one NBP table feed (table A and table B run as separate
// sources with separate ids).
type Source struct {
	id       int
	name     string
	url      string
	client   *httpfetch.Client
	store    *usecase.RateStore
	schedule ingestusecase.Schedule
	reporter ingestusecase.Reporter
}

var _ ingestusecase.Source = (*Source)(nil)

func NewSource(id int, name, url string, client *httpfetch.Client, store *usecase.RateStore, schedule ingestusecase.Schedule, reporter ingestusecase.Reporter) *Source {
	return &Source{
		id:       id,
		name:     name,
		url:      url,
		client:   client,
		store:    store,
		schedule: schedule,
		reporter: reporter,
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

func (s *Source) Process(ctx context.Context, payload []byte, now time.Time) (int, error) {
	quotes, warnings, err := Normalize(payload)
	if err != nil {
		return 0, &ingestusecase.ParseError{Source: s.name, Err: err}
	}
	for _, w := range warnings {
		s.reporter.SendLog(ctx, slog.LevelWarn, fmt.Sprintf("%s: %s", s.name, w))
	}
	return s.store.Store(ctx, quotes, s.id, now)
}
