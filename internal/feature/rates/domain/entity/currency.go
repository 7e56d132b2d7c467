package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is a deduplicated reference row identifying a currency by symbol.
// It is created once, the first time the symbol is observed in any payload,
// and reused by id thereafter. Name may start empty and be back-filled later.
type Currency struct {
	ID     uint
	Symbol string
	Name   string
}

// ExchangeRate is one immutable, timestamped observation of a rate between
// two currencies: Rate quote units per 1 base unit.
type ExchangeRate struct {
	BaseID    uint
	QuoteID   uint
	Rate      decimal.Decimal
	SourceID  int
	Timestamp time.Time
}

// Quote is the normalized, format-independent representation of one observed
// rate, before symbols are resolved to reference rows.
type Quote struct {
	BaseSymbol  string
	BaseName    string
	QuoteSymbol string
	QuoteName   string
	Rate        decimal.Decimal
}
