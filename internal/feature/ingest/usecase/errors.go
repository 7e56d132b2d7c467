package usecase

import "fmt"

// NetworkError is a transport-level or non-2xx HTTP failure from an upstream
// feed. The cycle treats it as "not fetched this cycle": the source is
// reported at warning level and retried on a later wake-up.
type NetworkError struct {
	URL    string
	Status int
	Body   string
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: http %d: %s", e.URL, e.Status, e.Body)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError is a malformed or unexpectedly shaped payload. It aborts the
// source for this cycle only.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s payload: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ResolutionError is a reference-entity lookup or insert failure. Remaining
// tuples for the source are abandoned; other sources are unaffected.
type ResolutionError struct {
	Symbol string
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %q: %v", e.Symbol, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// PersistenceError is a fact append failure.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("append facts: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
