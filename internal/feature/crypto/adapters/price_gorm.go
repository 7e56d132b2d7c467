package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"rates_backend/internal/feature/crypto/domain/entity"
	"rates_backend/internal/feature/crypto/usecase"
)

type priceGorm struct {
	db *gorm.DB
}

var _ usecase.PriceRepository = (*priceGorm)(nil)

func NewPriceRepository(db *gorm.DB) *priceGorm {
	return &priceGorm{db: db}
}

type AssetPriceModel struct {
	ID        uint            `gorm:"primaryKey"`
	AssetID   uint            `gorm:"not null;index"`
	Price     decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	High24    decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Low24     decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	ChangePct decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	SourceID  int             `gorm:"not null;index:price_source_time,priority:1"`
	Timestamp time.Time       `gorm:"not null;index:price_source_time,priority:2"`
}

func (AssetPriceModel) TableName() string {
	return "cryptos"
}

func toPriceModel(e entity.AssetPrice) AssetPriceModel {
	return AssetPriceModel{
		AssetID:   e.AssetID,
		Price:     e.Price,
		High24:    e.High24,
		Low24:     e.Low24,
		ChangePct: e.ChangePct,
		SourceID:  e.SourceID,
		Timestamp: e.Timestamp,
	}
}

func (r *priceGorm) AppendBatch(ctx context.Context, prices []entity.AssetPrice) error {
	if len(prices) == 0 {
		return nil
	}
	ms := make([]AssetPriceModel, 0, len(prices))
	for _, e := range prices {
		ms = append(ms, toPriceModel(e))
	}
	return r.db.WithContext(ctx).Create(&ms).Error
}

func (r *priceGorm) LatestTimestamp(ctx context.Context, sourceID int) (time.Time, error) {
	var row AssetPriceModel
	err := r.db.WithContext(ctx).
		Where("source_id = ?", sourceID).
		Order("timestamp DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return row.Timestamp, nil
}
