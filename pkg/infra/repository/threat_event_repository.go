package repository

import (
	"context"
	"time"

	"github.com/RHD-founder/thukpa/pkg/domain/threat"
	"gorm.io/gorm"
)

type threatEventRepository struct {
	db *gorm.DB
}

func NewThreatEventRepository(db *gorm.DB) threat.Repository {
	return &threatEventRepository{
		db: db,
	}
}

func (r *threatEventRepository) Create(ctx context.Context, event *threat.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *threatEventRepository) ListRecent(ctx context.Context, since time.Time, limit int) ([]threat.Event, error) {
	var events []threat.Event
	query := r.db.WithContext(ctx).
		Where("timestamp >= ?", since).
		Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *threatEventRepository) CountByType(ctx context.Context) (map[threat.Type]int64, error) {
	type row struct {
		Type  threat.Type
		Count int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&threat.Event{}).
		Select("type, COUNT(*) AS count").
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[threat.Type]int64, len(rows))
	for _, r := range rows {
		counts[r.Type] = r.Count
	}
	return counts, nil
}
