package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"rates_backend/internal/feature/logs/domain/entity"
	"rates_backend/internal/feature/logs/usecase"
)

type logGorm struct {
	db *gorm.DB
}

var _ usecase.LogRepository = (*logGorm)(nil)

func NewLogRepository(db *gorm.DB) *logGorm {
	return &logGorm{db: db}
}

type LogModel struct {
	ID        uint      `gorm:"primaryKey"`
	Level     int       `gorm:"not null"`
	Message   string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"not null;index"`
	LogSource int       `gorm:"not null"`
}

func (LogModel) TableName() string {
	return "logs"
}

func toEntity(m LogModel) entity.LogEntry {
	return entity.LogEntry{
		ID:        m.ID,
		Level:     m.Level,
		Message:   m.Message,
		Timestamp: m.Timestamp,
		Source:    m.LogSource,
	}
}

func (r *logGorm) Save(ctx context.Context, e entity.LogEntry) error {
	m := LogModel{
		Level:     e.Level,
		Message:   e.Message,
		Timestamp: e.Timestamp,
		LogSource: e.Source,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *logGorm) Since(ctx context.Context, threshold time.Time) ([]entity.LogEntry, error) {
	var rows []LogModel
	err := r.db.WithContext(ctx).
		Where("timestamp >= ?", threshold).
		Order("timestamp DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.LogEntry, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

func (r *logGorm) LatestContaining(ctx context.Context, sub string) (entity.LogEntry, bool, error) {
	var row LogModel
	err := r.db.WithContext(ctx).
		Where("message LIKE ?", "%"+sub+"%").
		Order("timestamp DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.LogEntry{}, false, nil
	}
	if err != nil {
		return entity.LogEntry{}, false, err
	}
	return toEntity(row), true, nil
}
