package repository

import (
	"context"

	"github.com/RHD-founder/thukpa/pkg/domain/threat"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type blockedDeviceRepository struct {
	db *gorm.DB
}

func NewBlockedDeviceRepository(db *gorm.DB) threat.BlockedDeviceRepository {
	return &blockedDeviceRepository{
		db: db,
	}
}

func (r *blockedDeviceRepository) Save(ctx context.Context, device *threat.BlockedDevice) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fingerprint"}},
			UpdateAll: true,
		}).
		Create(device).Error
}

func (r *blockedDeviceRepository) Delete(ctx context.Context, fingerprint string) error {
	return r.db.WithContext(ctx).
		Where("fingerprint = ?", fingerprint).
		Delete(&threat.BlockedDevice{}).Error
}

func (r *blockedDeviceRepository) List(ctx context.Context) ([]threat.BlockedDevice, error) {
	var devices []threat.BlockedDevice
	if err := r.db.WithContext(ctx).
		Order("blocked_at DESC").
		Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}
