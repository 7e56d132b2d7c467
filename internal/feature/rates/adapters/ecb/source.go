// Package ecb ingests the ECB daily reference rates (the XML cube format at
// eurofxref-daily.xml).
package ecb

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	ingestusecase "rates_backend/internal/feature/ingest/usecase"
	"rates_backend/internal/feature/rates/domain/entity"
	"rates_backend/internal/feature/rates/usecase"
	"rates_backend/internal/platform/httpfetch"
)

const (
	BaseSymbol = "EUR"
	BaseName   = "Euro"
)

// cube mirrors the recursive <Cube> element: the outer wrapper, one child
// carrying a time attribute, and rate children carrying currency and rate.
type cube struct {
	Time     string `xml:"time,attr"`
	Currency string `xml:"currency,attr"`
	Rate     string `xml:"rate,attr"`
	Cubes    []cube `xml:"Cube"`
}

type envelope struct {
	Cube cube `xml:"Cube"`
}

// Normalize maps a cube payload to canonical quotes: EUR base against every
// currency/rate child of the time-stamped cube. A payload without a
// time-stamped cube is a parse error for this cycle.
func Normalize(payload []byte) ([]entity.Quote, error) {
	var doc envelope
	if err := xml.Unmarshal(payload, &doc); err != nil {
		return nil, err
	}

	timeCube := findTimeCube(doc.Cube)
	if timeCube == nil {
		return nil, errors.New("no valid time or rate data in XML")
	}

	var quotes []entity.Quote
	for _, c := range collectRateCubes(*timeCube) {
		rate, err := decimal.NewFromString(c.Rate)
		if err != nil {
			return nil, fmt.Errorf("parse rate %q for %s: %w", c.Rate, c.Currency, err)
		}
		quotes = append(quotes, entity.Quote{
			BaseSymbol:  BaseSymbol,
			BaseName:    BaseName,
			QuoteSymbol: c.Currency,
			Rate:        rate,
		})
	}
	return quotes, nil
}

func findTimeCube(c cube) *cube {
	if c.Time != "" {
		return &c
	}
	for i := range c.Cubes {
		if found := findTimeCube(c.Cubes[i]); found != nil {
			return found
		}
	}
	return nil
}

func collectRateCubes(c cube) []cube {
	var out []cube
	for _, child := range c.Cubes {
		if child.Currency != "" && child.Rate != "" {
			out = append(out, child)
		}
		out = append(out, collectRateCubes(child)...)
	}
	return out
}

// Source is the ECB reference-rate feed.
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

func (s *Source) Process(ctx context.Context, payload []byte, now time.Time) (int, error) {
	quotes, err := Normalize(payload)
	if err != nil {
		return 0, &ingestusecase.ParseError{Source: s.name, Err: err}
	}
	return s.store.Store(ctx, quotes, s.id, now)
}
