package usecase

import (
	"context"
	"log/slog"
	"time"
)

// Source is one configured upstream feed. Implementations live under the
// feature adapters (nbp, ecb, fixer, coingecko); the worker only sees this
// interface.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type Source interface {
	ID() int
	Name() string
	Schedule() Schedule

	// LastFetched returns the timestamp of the newest fact persisted for
	// this source, or the zero time when none exists.
	LastFetched(ctx context.Context) (time.Time, error)

	// Fetch performs a single HTTP GET against the feed. No retry and no
	// backoff: a failed attempt is retried on a later wake-up. Failures are
	// *NetworkError.
	Fetch(ctx context.Context) ([]byte, error)

	// Process normalizes the payload, resolves reference entities and
	// appends facts. It returns the number of facts written. Failures are
	// *ParseError, *ResolutionError or *PersistenceError.
	Process(ctx context.Context, payload []byte, now time.Time) (int, error)
}

// Reporter is the centralized logging sink consumed by every component to
// report non-fatal problems without halting the cycle. Delivery is best
// effort; callers never inspect more than "did not panic".
type Reporter interface {
	SendLog(ctx context.Context, level slog.Level, message string)
}
