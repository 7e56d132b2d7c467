package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"rates_backend/internal/feature/rates/domain/entity"
	"rates_backend/internal/feature/rates/usecase"
)

type rateGorm struct {
	db *gorm.DB
}

var _ usecase.RateRepository = (*rateGorm)(nil)

func NewRateRepository(db *gorm.DB) *rateGorm {
	return &rateGorm{db: db}
}

type ExchangeRateModel struct {
	ID        uint            `gorm:"primaryKey"`
	BaseID    uint            `gorm:"not null;index"`
	QuoteID   uint            `gorm:"not null"`
	Rate      decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	SourceID  int             `gorm:"not null;index:rate_source_time,priority:1"`
	Timestamp time.Time       `gorm:"not null;index:rate_source_time,priority:2"`
}

func (ExchangeRateModel) TableName() string {
	return "exchange_rates"
}

func toRateModel(e entity.ExchangeRate) ExchangeRateModel {
	return ExchangeRateModel{
		BaseID:    e.BaseID,
		QuoteID:   e.QuoteID,
		Rate:      e.Rate,
		SourceID:  e.SourceID,
		Timestamp: e.Timestamp,
	}
}

// AppendBatch appends facts as-is. No deduplication: the time series keeps
// every observation, including adjacent duplicates after a crash-restart.
func (r *rateGorm) AppendBatch(ctx context.Context, rates []entity.ExchangeRate) error {
	if len(rates) == 0 {
		return nil
	}
	ms := make([]ExchangeRateModel, 0, len(rates))
	for _, e := range rates {
		ms = append(ms, toRateModel(e))
	}
	return r.db.WithContext(ctx).Create(&ms).Error
}

func (r *rateGorm) LatestTimestamp(ctx context.Context, sourceID int) (time.Time, error) {
	var row ExchangeRateModel
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
