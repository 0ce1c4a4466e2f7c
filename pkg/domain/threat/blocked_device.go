package threat

import (
	"time"

	"github.com/RHD-founder/thukpa/pkg/domain"
)

// BlockedDevice is a durable record of a blocklist entry. The enforcement
// decision itself is driven by the in-memory blocklist; these rows exist so an
// operator can audit who was blocked and why.
type BlockedDevice struct {
	Fingerprint string             `json:"fingerprint" gorm:"primaryKey"`
	Reason      string             `json:"reason"`
	Metadata    domain.DetailsJSON `json:"metadata" gorm:"type:jsonb"`
	BlockedAt   time.Time          `json:"blocked_at"`
}

func (b BlockedDevice) TableName() string {
	return "public.blocked_devices"
}
