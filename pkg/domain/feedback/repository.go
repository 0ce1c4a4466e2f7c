package feedback

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows List queries. Zero values mean "no filter".
type ListFilter struct {
	Query    string
	Status   Status
	Category Category
	Rating   int
	Page     int
	Limit    int
}

// WindowFilter selects feedback created within the trailing number of days,
// optionally narrowed to one category.
type WindowFilter struct {
	Days     int
	Category Category
}

type Stats struct {
	TotalSubmissions   int64            `json:"total_submissions"`
	TodaySubmissions   int64            `json:"today_submissions"`
	AverageRating      float64          `json:"average_rating"`
	AnonymousCount     int64            `json:"anonymous_count"`
	RecentSubmissions  []Feedback       `json:"recent_submissions"`
	CategoryBreakdown  map[string]int64 `json:"category_breakdown"`
	RatingDistribution map[string]int64 `json:"rating_distribution"`
}

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Create(ctx context.Context, feedback *Feedback) error
	Get(ctx context.Context, id uuid.UUID) (*Feedback, error)
	List(ctx context.Context, filter ListFilter) ([]Feedback, int64, error)
	ListSince(ctx context.Context, filter WindowFilter) ([]Feedback, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, today time.Time) (*Stats, error)
}
