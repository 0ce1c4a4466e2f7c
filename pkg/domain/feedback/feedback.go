package feedback

import (
	"time"

	"github.com/RHD-founder/thukpa/pkg/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category string

const (
	CategoryFood        Category = "food"
	CategoryService     Category = "service"
	CategoryAmbiance    Category = "ambiance"
	CategoryValue       Category = "value"
	CategoryCleanliness Category = "cleanliness"
	CategoryOther       Category = "other"
)

type Status string

const (
	StatusNew      Status = "new"
	StatusReviewed Status = "reviewed"
	StatusResolved Status = "resolved"
	StatusArchived Status = "archived"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

type Feedback struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string          `json:"name"`
	Contact     string          `json:"contact,omitempty"`
	Email       string          `json:"email,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Rating      *int            `json:"rating,omitempty"`
	Comments    string          `json:"comments,omitempty"`
	Location    string          `json:"location,omitempty"`
	Category    Category        `json:"category,omitempty" gorm:"index"`
	VisitDate   *time.Time      `json:"visit_date,omitempty"`
	IsAnonymous bool            `json:"is_anonymous"`
	Tags        domain.TagsJSON `json:"tags,omitempty" gorm:"type:jsonb"`
	Sentiment   Sentiment       `json:"sentiment"`
	Status      Status          `json:"status" gorm:"index;default:new"`
	IPAddress   string          `json:"-"`
	UserAgent   string          `json:"-"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (f Feedback) TableName() string {
	return "public.feedbacks"
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.Status == "" {
		f.Status = StatusNew
	}
	now := time.Now()
	f.CreatedAt = now
	f.UpdatedAt = now
	return nil
}

func (f *Feedback) BeforeUpdate(tx *gorm.DB) error {
	f.UpdatedAt = time.Now()
	return nil
}
