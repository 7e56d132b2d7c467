package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"rates_backend/internal/feature/logs/domain/entity"
)

// ErrEmptyMessage は空のメッセージを持つログエントリに対して返されます。
var ErrEmptyMessage = errors.New("log message must not be empty")

// recentWindow is how far back the recent-logs view reaches.
const recentWindow = 8 * time.Hour

// LogRepository persists and queries log entries.
type LogRepository interface {
	Save(ctx context.Context, e entity.LogEntry) error
	Since(ctx context.Context, threshold time.Time) ([]entity.LogEntry, error)
	// LatestContaining returns the newest entry whose message contains sub.
	LatestContaining(ctx context.Context, sub string) (entity.LogEntry, bool, error)
}

// Summary collects the latest table-count report lines sent by the workers.
type Summary struct {
	Crypto        *entity.LogEntry `json:"crypto"`
	ExchangeRates *entity.LogEntry `json:"exchangeRates"`
	CryptoNames   *entity.LogEntry `json:"cryptoNames"`
	CurrencyNames *entity.LogEntry `json:"currencyNames"`
	TotalRecords  *entity.LogEntry `json:"totalRecords"`
}

// LogsUsecase serves the centralized logger endpoints.
type LogsUsecase struct {
	repo LogRepository
	now  func() time.Time
}

// NewLogsUsecase creates a new LogsUsecase.
func NewLogsUsecase(repo LogRepository) *LogsUsecase {
	return &LogsUsecase{repo: repo, now: time.Now}
}

// Save stores one log entry. Entries with a blank message are rejected.
func (u *LogsUsecase) Save(ctx context.Context, e entity.LogEntry) error {
	if strings.TrimSpace(e.Message) == "" {
		return ErrEmptyMessage
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = u.now().UTC()
	}
	return u.repo.Save(ctx, e)
}

// Recent returns the entries of the last eight hours, newest first.
func (u *LogsUsecase) Recent(ctx context.Context) ([]entity.LogEntry, error) {
	return u.repo.Since(ctx, u.now().UTC().Add(-recentWindow))
}

// Summarize returns the latest table-count lines the workers reported.
func (u *LogsUsecase) Summarize(ctx context.Context) (Summary, error) {
	var s Summary
	for _, q := range []struct {
		sub  string
		dest **entity.LogEntry
	}{
		{"Crypto table has", &s.Crypto},
		{"ExchangeRates table has", &s.ExchangeRates},
		{"CryptoNames table has", &s.CryptoNames},
		{"CurrencyNames table has", &s.CurrencyNames},
		{"Total number of records", &s.TotalRecords},
	} {
		e, found, err := u.repo.LatestContaining(ctx, q.sub)
		if err != nil {
			return Summary{}, err
		}
		if found {
			entry := e
			*q.dest = &entry
		}
	}
	return s, nil
}
