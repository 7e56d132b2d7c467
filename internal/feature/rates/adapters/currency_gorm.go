package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rates_backend/internal/feature/rates/domain/entity"
	"rates_backend/internal/feature/rates/usecase"
)

type currencyGorm struct {
	db *gorm.DB
}

var _ usecase.CurrencyRepository = (*currencyGorm)(nil)

func NewCurrencyRepository(db *gorm.DB) *currencyGorm {
	return &currencyGorm{db: db}
}

type CurrencyModel struct {
	ID     uint   `gorm:"primaryKey"`
	Symbol string `gorm:"size:10;not null;uniqueIndex"`
	Name   string `gorm:"size:100"`
}

func (CurrencyModel) TableName() string {
	return "currency_names"
}

// GetOrCreate inserts the symbol if absent and returns the stored row. The
// insert races through the unique index: concurrent resolvers on the same
// new symbol converge on one row instead of creating duplicates.
func (r *currencyGorm) GetOrCreate(ctx context.Context, symbol, name string) (entity.Currency, error) {
	m := CurrencyModel{Symbol: symbol, Name: name}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}},
			DoNothing: true,
		}).
		Create(&m).Error; err != nil {
		return entity.Currency{}, err
	}

	// Re-read: on conflict the insert was a no-op and m carries no id.
	var row CurrencyModel
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&row).Error; err != nil {
		return entity.Currency{}, err
	}

	if strings.TrimSpace(row.Name) == "" && strings.TrimSpace(name) != "" {
		if err := r.db.WithContext(ctx).
			Model(&CurrencyModel{}).
			Where("id = ?", row.ID).
			Update("name", name).Error; err != nil {
			return entity.Currency{}, err
		}
		row.Name = name
	}

	return entity.Currency{ID: row.ID, Symbol: row.Symbol, Name: row.Name}, nil
}

func (r *currencyGorm) Lookup(ctx context.Context, symbol string) (entity.Currency, bool, error) {
	var row CurrencyModel
	err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Currency{}, false, nil
	}
	if err != nil {
		return entity.Currency{}, false, err
	}
	return entity.Currency{ID: row.ID, Symbol: row.Symbol, Name: row.Name}, true, nil
}
