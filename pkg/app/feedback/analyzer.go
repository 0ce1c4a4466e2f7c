package feedback

import (
	"context"
	"sort"
	"strconv"
	"time"

	domainFeedback "github.com/RHD-founder/thukpa/pkg/domain/feedback"
	"github.com/sirupsen/logrus"
)

// DailyPoint aggregates one calendar day of submissions.
type DailyPoint struct {
	Date          string  `json:"date"`
	Count         int64   `json:"count"`
	AverageRating float64 `json:"average_rating"`
}

type Analytics struct {
	WindowDays         int              `json:"window_days"`
	TotalSubmissions   int64            `json:"total_submissions"`
	AverageRating      float64          `json:"average_rating"`
	Daily              []DailyPoint     `json:"daily"`
	CategoryBreakdown  map[string]int64 `json:"category_breakdown"`
	SentimentBreakdown map[string]int64 `json:"sentiment_breakdown"`
	RatingDistribution map[string]int64 `json:"rating_distribution"`
}

//go:generate mockery --name=Analyzer --dir=. --output=./mocks --filename=feedback_analyzer_mock.go --case=underscore --with-expecter
type Analyzer interface {
	Analyze(ctx context.Context, filter domainFeedback.WindowFilter) (*Analytics, error)
}

type analyzer struct {
	logger *logrus.Logger
	repo   domainFeedback.Repository
}

func NewAnalyzer(logger *logrus.Logger, repo domainFeedback.Repository) Analyzer {
	return &analyzer{
		logger: logger,
		repo:   repo,
	}
}

func (a *analyzer) Analyze(ctx context.Context, filter domainFeedback.WindowFilter) (*Analytics, error) {
	if filter.Days < 1 {
		filter.Days = 30
	}

	entities, err := a.repo.ListSince(ctx, filter)
	if err != nil {
		a.logger.WithError(err).Error("failed to load feedback window")
		return nil, err
	}

	analytics := &Analytics{
		WindowDays:         filter.Days,
		TotalSubmissions:   int64(len(entities)),
		CategoryBreakdown:  make(map[string]int64),
		SentimentBreakdown: make(map[string]int64),
		RatingDistribution: make(map[string]int64),
	}

	type dayAgg struct {
		count       int64
		ratingSum   int64
		ratingCount int64
	}
	days := make(map[string]*dayAgg)

	var ratingSum, ratingCount int64
	for i := range entities {
		entity := &entities[i]

		day := entity.CreatedAt.Format(time.DateOnly)
		agg, ok := days[day]
		if !ok {
			agg = &dayAgg{}
			days[day] = agg
		}
		agg.count++

		if entity.Rating != nil {
			ratingSum += int64(*entity.Rating)
			ratingCount++
			agg.ratingSum += int64(*entity.Rating)
			agg.ratingCount++
			analytics.RatingDistribution[strconv.Itoa(*entity.Rating)]++
		}
		if entity.Category != "" {
			analytics.CategoryBreakdown[string(entity.Category)]++
		}
		if entity.Sentiment != "" {
			analytics.SentimentBreakdown[string(entity.Sentiment)]++
		}
	}

	if ratingCount > 0 {
		analytics.AverageRating = float64(ratingSum) / float64(ratingCount)
	}

	analytics.Daily = make([]DailyPoint, 0, len(days))
	for day, agg := range days {
		point := DailyPoint{Date: day, Count: agg.count}
		if agg.ratingCount > 0 {
			point.AverageRating = float64(agg.ratingSum) / float64(agg.ratingCount)
		}
		analytics.Daily = append(analytics.Daily, point)
	}
	sort.Slice(analytics.Daily, func(i, j int) bool {
		return analytics.Daily[i].Date < analytics.Daily[j].Date
	})

	return analytics, nil
}
