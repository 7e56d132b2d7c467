package usecase

import (
	"context"
	"time"

	"rates_backend/internal/feature/crypto/domain/entity"
	ingestusecase "rates_backend/internal/feature/ingest/usecase"
)

// AssetRepository resolves symbols to durable asset reference rows.
type AssetRepository interface {
	// GetOrCreate returns the reference row for symbol, inserting it when
	// absent. Blank stored name/image fields are back-filled from non-blank
	// candidates; non-blank fields are never overwritten.
	GetOrCreate(ctx context.Context, symbol, name, image string) (entity.Asset, error)
}

// PriceRepository appends price-snapshot facts, append-only.
type PriceRepository interface {
	AppendBatch(ctx context.Context, prices []entity.AssetPrice) error
	LatestTimestamp(ctx context.Context, sourceID int) (time.Time, error)
}

// AssetStore はスナップショットを資産参照行に解決し、価格ファクトとして追記します。
type AssetStore struct {
	assets AssetRepository
	prices PriceRepository
}

// NewAssetStore creates a new AssetStore.
func NewAssetStore(assets AssetRepository, prices PriceRepository) *AssetStore {
	return &AssetStore{assets: assets, prices: prices}
}

// Store resolves every snapshot and appends one price fact per snapshot,
// stamped with now. It returns the number of facts written.
func (s *AssetStore) Store(ctx context.Context, snapshots []entity.Snapshot, sourceID int, now time.Time) (int, error) {
	if len(snapshots) == 0 {
		return 0, nil
	}

	facts := make([]entity.AssetPrice, 0, len(snapshots))
	for _, snap := range snapshots {
		asset, err := s.assets.GetOrCreate(ctx, snap.Symbol, snap.Name, snap.Image)
		if err != nil {
			return 0, &ingestusecase.ResolutionError{Symbol: snap.Symbol, Err: err}
		}
		facts = append(facts, entity.AssetPrice{
			AssetID:   asset.ID,
			Price:     snap.Price,
			High24:    snap.High24,
			Low24:     snap.Low24,
			ChangePct: snap.ChangePct,
			SourceID:  sourceID,
			Timestamp: now,
		})
	}

	if err := s.prices.AppendBatch(ctx, facts); err != nil {
		return 0, &ingestusecase.PersistenceError{Err: err}
	}
	return len(facts), nil
}

// LastFetched returns the newest price fact timestamp for sourceID.
func (s *AssetStore) LastFetched(ctx context.Context, sourceID int) (time.Time, error) {
	return s.prices.LatestTimestamp(ctx, sourceID)
}
