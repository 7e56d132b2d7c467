package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rates_backend/internal/feature/crypto/domain/entity"
)

func TestPriceGorm_AppendBatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPriceRepository(db)

	ts := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	prices := []entity.AssetPrice{
		{
			AssetID:   1,
			Price:     decimal.NewFromFloat(64250.12),
			High24:    decimal.NewFromFloat(65100.00),
			Low24:     decimal.NewFromFloat(63800.55),
			ChangePct: decimal.NewFromFloat(-1.24),
			SourceID:  5,
			Timestamp: ts,
		},
	}

	require.NoError(t, repo.AppendBatch(context.Background(), prices))

	var row AssetPriceModel
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, uint(1), row.AssetID)
	assert.True(t, row.Price.Equal(decimal.NewFromFloat(64250.12)))
	assert.True(t, row.ChangePct.Equal(decimal.NewFromFloat(-1.24)))
	assert.Equal(t, 5, row.SourceID)
}

func TestPriceGorm_AppendBatch_EmptyIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPriceRepository(db)

	require.NoError(t, repo.AppendBatch(context.Background(), nil))

	var count int64
	require.NoError(t, db.Model(&AssetPriceModel{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestPriceGorm_LatestTimestamp(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPriceRepository(db)

	got, err := repo.LatestTimestamp(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	older := time.Date(2026, 3, 2, 11, 55, 0, 0, time.UTC)
	newer := older.Add(5 * time.Minute)
	require.NoError(t, repo.AppendBatch(context.Background(), []entity.AssetPrice{
		{AssetID: 1, Price: decimal.NewFromInt(100), SourceID: 5, Timestamp: older},
		{AssetID: 1, Price: decimal.NewFromInt(101), SourceID: 5, Timestamp: newer},
	}))

	got, err = repo.LatestTimestamp(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, got.Equal(newer))
}
