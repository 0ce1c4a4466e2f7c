package repository

import (
	"context"

	"github.com/RHD-founder/thukpa/pkg/domain/auditlog"
	"gorm.io/gorm"
)

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) auditlog.Repository {
	return &auditLogRepository{
		db: db,
	}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *auditlog.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditLogRepository) ListRecent(ctx context.Context, limit int) ([]auditlog.Entry, error) {
	if limit < 1 {
		limit = 50
	}
	var entries []auditlog.Entry
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
