// Package coingecko ingests the CoinGecko markets snapshot (the flat JSON
// array at /coins/markets).
package coingecko

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"rates_backend/internal/feature/crypto/domain/entity"
	"rates_backend/internal/feature/crypto/usecase"
	ingestusecase "rates_backend/internal/feature/ingest/usecase"
	"rates_backend/internal/platform/httpfetch"
)

type marketEntry struct {
	Name      string          `json:"name"`
	Symbol    string          `json:"symbol"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"current_price"`
	High24    decimal.Decimal `json:"high_24h"`
	Low24     decimal.Decimal `json:"low_24h"`
	ChangePct decimal.Decimal `json:"price_change_percentage_24h"`
}

// Normalize maps a markets payload to snapshots. The 24h change percentage
// is stored with two-decimal precision.
func Normalize(payload []byte) ([]entity.Snapshot, error) {
	var entries []marketEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, err
	}

	snapshots := make([]entity.Snapshot, 0, len(entries))
	for _, e := range entries {
		snapshots = append(snapshots, entity.Snapshot{
			Symbol:    e.Symbol,
			Name:      e.Name,
			Image:     e.Image,
			Price:     e.Price,
			High24:    e.High24,
			Low24:     e.Low24,
			ChangePct: e.ChangePct.Round(2),
		})
	}
	return snapshots, nil
}

// Source is the CoinGecko market-snapshot feed.
type Source struct {
	id       int
	name     string
	url      string
	client   *httpfetch.Client
	store    *usecase.AssetStore
	schedule ingestusecase.Schedule
}

var _ ingestusecase.Source = (*Source)(nil)

func NewSource(id int, name, url string, client *httpfetch.Client, store *usecase.AssetStore, schedule ingestusecase.Schedule) *Source {
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

func (s *Source) Process(ctx context.Context, payload []byte, now time.Time) (int, error) {
	snapshots, err := Normalize(payload)
	if err != nil {
		return 0, &ingestusecase.ParseError{Source: s.name, Err: err}
	}
	return s.store.Store(ctx, snapshots, s.id, now)
}
