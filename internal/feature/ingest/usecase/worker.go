package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rates_backend/internal/shared/ratelimiter"
)

// TableCounts holds record counts of the persisted tables, reported to the
// centralized logger after a cycle that wrote new facts.
type TableCounts struct {
	Cryptos       int64
	ExchangeRates int64
	CryptoNames   int64
	CurrencyNames int64
}

func (c TableCounts) Total() int64 {
	return c.Cryptos + c.ExchangeRates + c.CryptoNames + c.CurrencyNames
}

// CensusRepository counts the persisted rows for the post-cycle summary.
type CensusRepository interface {
	Counts(ctx context.Context) (TableCounts, error)
}

// Worker は全ての設定済みソースを一定間隔で巡回するサイクルドライバです。
// 各ソースの失敗はそのソース・そのサイクル内に閉じ、プロセスを止めません。
type Worker struct {
	sources     []Source
	reporter    Reporter
	census      CensusRepository
	rateLimiter ratelimiter.RateLimiterInterface
	tick        time.Duration
	now         func() time.Time
}

// NewWorker creates a new Worker. census may be nil, in which case no
// post-cycle summary is reported.
func NewWorker(sources []Source, reporter Reporter, census CensusRepository, rl ratelimiter.RateLimiterInterface, tick time.Duration) *Worker {
	if tick <= 0 {
		tick = time.Minute
	}
	return &Worker{
		sources:     sources,
		reporter:    reporter,
		census:      census,
		rateLimiter: rl,
		tick:        tick,
		now:         time.Now,
	}
}

// Run executes ingestion cycles until ctx is cancelled. The wake-up tick is
// deliberately shorter than any source cadence; the per-source schedules
// decide what is actually fetched, so waking every minute does not
// over-query slow sources.
func (w *Worker) Run(ctx context.Context) error {
	w.reporter.SendLog(ctx, slog.LevelInfo, fmt.Sprintf("Worker running at: %s", w.now().Format(time.RFC3339)))

	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for {
		w.RunCycle(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunCycle processes every configured source once, strictly sequentially.
// Sources are never fetched in parallel, so two sources never race on the
// entity resolver within one process.
func (w *Worker) RunCycle(ctx context.Context) {
	now := w.now()
	written := 0

	for _, src := range w.sources {
		if ctx.Err() != nil {
			return
		}
		n := w.runSource(ctx, src, now)
		written += n
	}

	if written > 0 {
		w.reportCensus(ctx)
	}
}

// runSource drives one source through gate check, fetch, and process. Every
// failure path reports and returns; the caller moves on to the next source.
func (w *Worker) runSource(ctx context.Context, src Source, now time.Time) int {
	last, err := src.LastFetched(ctx)
	if err != nil {
		w.reporter.SendLog(ctx, slog.LevelError, fmt.Sprintf("Failed to read last fetch time for source %s: %v", src.Name(), err))
		return 0
	}

	if !src.Schedule().IsDue(now, last) {
		slog.Debug("no fetching necessary", "source", src.Name())
		return 0
	}

	if w.rateLimiter != nil {
		w.rateLimiter.WaitIfNeeded()
	}

	payload, err := src.Fetch(ctx)
	if err != nil {
		var ne *NetworkError
		if errors.As(err, &ne) {
			w.reporter.SendLog(ctx, slog.LevelWarn, fmt.Sprintf("Network problem while calling source %s: %v", src.Name(), err))
		} else {
			w.reporter.SendLog(ctx, slog.LevelError, fmt.Sprintf("Unexpected fetch failure for source %s: %v", src.Name(), err))
		}
		return 0
	}

	n, err := src.Process(ctx, payload, now)
	if err != nil {
		w.reporter.SendLog(ctx, slog.LevelError, fmt.Sprintf("Critical error while processing source %s: %v", src.Name(), err))
		return n
	}

	w.reporter.SendLog(ctx, slog.LevelInfo, fmt.Sprintf("Source %s stored %d records", src.Name(), n))
	return n
}

// reportCensus sends the table record counts the log summary endpoint keys
// off. Message shapes must stay stable for that endpoint.
func (w *Worker) reportCensus(ctx context.Context) {
	if w.census == nil {
		return
	}
	counts, err := w.census.Counts(ctx)
	if err != nil {
		slog.Warn("failed to count records", "error", err)
		return
	}
	w.reporter.SendLog(ctx, slog.LevelInfo, fmt.Sprintf("Crypto table has %d records", counts.Cryptos))
	w.reporter.SendLog(ctx, slog.LevelInfo, fmt.Sprintf("ExchangeRates table has %d records", counts.ExchangeRates))
	w.reporter.SendLog(ctx, slog.LevelInfo, fmt.Sprintf("CryptoNames table has %d records", counts.CryptoNames))
	w.reporter.SendLog(ctx, slog.LevelInfo, fmt.Sprintf("CurrencyNames table has %d records", counts.CurrencyNames))
	w.reporter.SendLog(ctx, slog.LevelInfo, fmt.Sprintf("Total number of records: %d", counts.Total()))
}
