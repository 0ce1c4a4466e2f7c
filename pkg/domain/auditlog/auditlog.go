package auditlog

import (
	"context"
	"time"

	"github.com/RHD-founder/thukpa/pkg/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Entry struct {
	ID         uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     *uuid.UUID         `json:"user_id,omitempty" gorm:"type:uuid;index"`
	Action     string             `json:"action" gorm:"index"`
	Resource   string             `json:"resource"`
	ResourceID string             `json:"resource_id,omitempty"`
	Details    domain.DetailsJSON `json:"details,omitempty" gorm:"type:jsonb"`
	IPAddress  string             `json:"ip_address"`
	UserAgent  string             `json:"user_agent"`
	CreatedAt  time.Time          `json:"created_at" gorm:"index"`
}

func (e Entry) TableName() string {
	return "public.audit_logs"
}

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return nil
}

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}
