package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rates_backend/internal/feature/crypto/domain/entity"
	ingestusecase "rates_backend/internal/feature/ingest/usecase"
)

type mockAssetRepository struct {
	getOrCreateFunc func(ctx context.Context, symbol, name, image string) (entity.Asset, error)
}

func (m *mockAssetRepository) GetOrCreate(ctx context.Context, symbol, name, image string) (entity.Asset, error) {
	return m.getOrCreateFunc(ctx, symbol, name, image)
}

type mockPriceRepository struct {
	appendFunc func(ctx context.Context, prices []entity.AssetPrice) error
	latestFunc func(ctx context.Context, sourceID int) (time.Time, error)

	appended [][]entity.AssetPrice
}

func (m *mockPriceRepository) AppendBatch(ctx context.Context, prices []entity.AssetPrice) error {
	m.appended = append(m.appended, prices)
	if m.appendFunc != nil {
		return m.appendFunc(ctx, prices)
	}
	return nil
}

func (m *mockPriceRepository) LatestTimestamp(ctx context.Context, sourceID int) (time.Time, error) {
	return m.latestFunc(ctx, sourceID)
}

func TestAssetStore_Store(t *testing.T) {
	assets := &mockAssetRepository{
		getOrCreateFunc: func(ctx context.Context, symbol, name, image string) (entity.Asset, error) {
			return entity.Asset{ID: 7, Symbol: symbol, Name: name, Image: image}, nil
		},
	}
	prices := &mockPriceRepository{}
	store := NewAssetStore(assets, prices)

	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	snapshots := []entity.Snapshot{
		{Symbol: "btc", Name: "Bitcoin", Price: decimal.NewFromInt(64000), ChangePct: decimal.NewFromFloat(-1.23)},
	}

	written, err := store.Store(context.Background(), snapshots, 5, now)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	require.Len(t, prices.appended, 1)
	fact := prices.appended[0][0]
	assert.Equal(t, uint(7), fact.AssetID)
	assert.Equal(t, 5, fact.SourceID)
	assert.True(t, fact.Timestamp.Equal(now))
	assert.True(t, fact.ChangePct.Equal(decimal.NewFromFloat(-1.23)))
}

func TestAssetStore_Store_EmptySnapshots(t *testing.T) {
	prices := &mockPriceRepository{}
	store := NewAssetStore(&mockAssetRepository{}, prices)

	written, err := store.Store(context.Background(), nil, 5, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, written)
	assert.Empty(t, prices.appended)
}

func TestAssetStore_Store_ResolutionFailure(t *testing.T) {
	boom := errors.New("db down")
	assets := &mockAssetRepository{
		getOrCreateFunc: func(ctx context.Context, symbol, name, image string) (entity.Asset, error) {
			return entity.Asset{}, boom
		},
	}
	prices := &mockPriceRepository{}
	store := NewAssetStore(assets, prices)

	written, err := store.Store(context.Background(), []entity.Snapshot{{Symbol: "btc"}}, 5, time.Now())
	require.Error(t, err)
	assert.Equal(t, 0, written)

	var re *ingestusecase.ResolutionError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "btc", re.Symbol)
	assert.Empty(t, prices.appended)
}

func TestAssetStore_Store_PersistenceFailure(t *testing.T) {
	boom := errors.New("insert failed")
	assets := &mockAssetRepository{
		getOrCreateFunc: func(ctx context.Context, symbol, name, image string) (entity.Asset, error) {
			return entity.Asset{ID: 1, Symbol: symbol}, nil
		},
	}
	prices := &mockPriceRepository{
		appendFunc: func(ctx context.Context, _ []entity.AssetPrice) error { return boom },
	}
	store := NewAssetStore(assets, prices)

	_, err := store.Store(context.Background(), []entity.Snapshot{{Symbol: "btc"}}, 5, time.Now())
	require.Error(t, err)

	var pe *ingestusecase.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, boom)
}

func TestAssetStore_LastFetched(t *testing.T) {
	ts := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	prices := &mockPriceRepository{
		latestFunc: func(ctx context.Context, sourceID int) (time.Time, error) {
			assert.Equal(t, 5, sourceID)
			return ts, nil
		},
	}
	store := NewAssetStore(&mockAssetRepository{}, prices)

	got, err := store.LastFetched(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, got.Equal(ts))
}
