package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is a deduplicated reference row identifying a crypto-asset by
// symbol, created the first time the symbol is observed.
type Asset struct {
	ID     uint
	Symbol string
	Name   string
	Image  string
}

// AssetPrice is one immutable, timestamped price observation for an asset,
// priced in a single implicit fiat unit (USD).
type AssetPrice struct {
	AssetID   uint
	Price     decimal.Decimal
	High24    decimal.Decimal
	Low24     decimal.Decimal
	ChangePct decimal.Decimal
	SourceID  int
	Timestamp time.Time
}

// Snapshot is the normalized representation of one market-snapshot entry,
// before the symbol is resolved to a reference row.
type Snapshot struct {
	Symbol    string
	Name      string
	Image     string
	Price     decimal.Decimal
	High24    decimal.Decimal
	Low24     decimal.Decimal
	ChangePct decimal.Decimal
}
