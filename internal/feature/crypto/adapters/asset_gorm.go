package adapters

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rates_backend/internal/feature/crypto/domain/entity"
	"rates_backend/internal/feature/crypto/usecase"
)

type assetGorm struct {
	db *gorm.DB
}

var _ usecase.AssetRepository = (*assetGorm)(nil)

func NewAssetRepository(db *gorm.DB) *assetGorm {
	return &assetGorm{db: db}
}

type AssetModel struct {
	ID     uint   `gorm:"primaryKey"`
	Symbol string `gorm:"size:16;not null;uniqueIndex"`
	Name   string `gorm:"size:100"`
	Image  string `gorm:"type:text"`
}

func (AssetModel) TableName() string {
	return "crypto_names"
}

// GetOrCreate inserts the symbol if absent and returns the stored row,
// back-filling blank name/image fields. The unique symbol index keeps
// concurrent creators from inserting duplicate rows.
func (r *assetGorm) GetOrCreate(ctx context.Context, symbol, name, image string) (entity.Asset, error) {
	m := AssetModel{Symbol: symbol, Name: name, Image: image}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}},
			DoNothing: true,
		}).
		Create(&m).Error; err != nil {
		return entity.Asset{}, err
	}

	var row AssetModel
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&row).Error; err != nil {
		return entity.Asset{}, err
	}

	updates := map[string]interface{}{}
	if strings.TrimSpace(row.Name) == "" && strings.TrimSpace(name) != "" {
		updates["name"] = name
		row.Name = name
	}
	if strings.TrimSpace(row.Image) == "" && strings.TrimSpace(image) != "" {
		updates["image"] = image
		row.Image = image
	}
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&AssetModel{}).
			Where("id = ?", row.ID).
			Updates(updates).Error; err != nil {
			return entity.Asset{}, err
		}
	}

	return entity.Asset{ID: row.ID, Symbol: row.Symbol, Name: row.Name, Image: row.Image}, nil
}
