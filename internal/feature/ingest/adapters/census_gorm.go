package adapters

import (
	"context"

	"gorm.io/gorm"

	cryptoadapters "rates_backend/internal/feature/crypto/adapters"
	"rates_backend/internal/feature/ingest/usecase"
	ratesadapters "rates_backend/internal/feature/rates/adapters"
)

type censusGorm struct {
	db *gorm.DB
}

var _ usecase.CensusRepository = (*censusGorm)(nil)

func NewCensusRepository(db *gorm.DB) *censusGorm {
	return &censusGorm{db: db}
}

// Counts reads the record counts of the four fact/reference tables for the
// post-cycle summary.
func (r *censusGorm) Counts(ctx context.Context) (usecase.TableCounts, error) {
	var counts usecase.TableCounts
	db := r.db.WithContext(ctx)

	if err := db.Model(&cryptoadapters.AssetPriceModel{}).Count(&counts.Cryptos).Error; err != nil {
		return usecase.TableCounts{}, err
	}
	if err := db.Model(&ratesadapters.ExchangeRateModel{}).Count(&counts.ExchangeRates).Error; err != nil {
		return usecase.TableCounts{}, err
	}
	if err := db.Model(&cryptoadapters.AssetModel{}).Count(&counts.CryptoNames).Error; err != nil {
		return usecase.TableCounts{}, err
	}
	if err := db.Model(&ratesadapters.CurrencyModel{}).Count(&counts.CurrencyNames).Error; err != nil {
		return usecase.TableCounts{}, err
	}
	return counts, nil
}
