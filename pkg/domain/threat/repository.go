package threat

import (
	"context"
	"time"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Create(ctx context.Context, event *Event) error
	ListRecent(ctx context.Context, since time.Time, limit int) ([]Event, error)
	CountByType(ctx context.Context) (map[Type]int64, error)
}

//go:generate mockery --name=BlockedDeviceRepository --dir=. --output=./mocks --filename=blocked_device_repository_mock.go --case=underscore --with-expecter
type BlockedDeviceRepository interface {
	Save(ctx context.Context, device *BlockedDevice) error
	Delete(ctx context.Context, fingerprint string) error
	List(ctx context.Context) ([]BlockedDevice, error)
}
