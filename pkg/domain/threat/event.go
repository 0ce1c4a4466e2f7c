package threat

import (
	"time"

	"github.com/RHD-founder/thukpa/pkg/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Type string

const (
	TypeBruteForce        Type = "brute_force"
	TypeScraping          Type = "scraping"
	TypeSuspiciousPattern Type = "suspicious_pattern"
	TypeRateLimitExceeded Type = "rate_limit_exceeded"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// AtLeast reports whether s is as severe as other or more.
func (s Severity) AtLeast(other Severity) bool {
	return severityRank[s] >= severityRank[other]
}

// Event is a single detected suspicious occurrence. An event is immutable once
// created; Blocked is set exactly once at creation time by the blocking policy.
type Event struct {
	ID                uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey"`
	Type              Type               `json:"type" gorm:"index"`
	Severity          Severity           `json:"severity" gorm:"index"`
	UserID            string             `json:"user_id,omitempty"`
	IP                string             `json:"ip"`
	UserAgent         string             `json:"user_agent"`
	DeviceFingerprint string             `json:"device_fingerprint" gorm:"index"`
	Timestamp         time.Time          `json:"timestamp" gorm:"index"`
	Path              string             `json:"path"`
	Details           domain.DetailsJSON `json:"details" gorm:"type:jsonb"`
	Blocked           bool               `json:"blocked"`
}

func (e Event) TableName() string {
	return "public.threat_events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
