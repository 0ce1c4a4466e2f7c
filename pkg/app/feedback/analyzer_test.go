package feedback

import (
	"context"
	"errors"
	"testing"
	"time"

	domainFeedback "github.com/RHD-founder/thukpa/pkg/domain/feedback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzer_Analyze(t *testing.T) {
	repo := new(mockRepository)
	analyzer := NewAnalyzer(testLogger(), repo)

	day1 := time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 8, 21, 18, 30, 0, 0, time.UTC)
	entities := []domainFeedback.Feedback{
		{CreatedAt: day1, Rating: intPtr(5), Category: domainFeedback.CategoryFood, Sentiment: domainFeedback.SentimentPositive},
		{CreatedAt: day1, Rating: intPtr(3), Category: domainFeedback.CategoryService, Sentiment: domainFeedback.SentimentNeutral},
		{CreatedAt: day2, Category: domainFeedback.CategoryFood, Sentiment: domainFeedback.SentimentNegative},
	}

	ctx := context.Background()
	filter := domainFeedback.WindowFilter{Days: 7}
	repo.On("ListSince", ctx, filter).Return(entities, nil)

	analytics, err := analyzer.Analyze(ctx, filter)

	require.NoError(t, err)
	assert.Equal(t, 7, analytics.WindowDays)
	assert.Equal(t, int64(3), analytics.TotalSubmissions)
	assert.InDelta(t, 4.0, analytics.AverageRating, 0.001)

	require.Len(t, analytics.Daily, 2)
	assert.Equal(t, "2025-08-20", analytics.Daily[0].Date)
	assert.Equal(t, int64(2), analytics.Daily[0].Count)
	assert.InDelta(t, 4.0, analytics.Daily[0].AverageRating, 0.001)
	assert.Equal(t, "2025-08-21", analytics.Daily[1].Date)
	assert.Equal(t, int64(1), analytics.Daily[1].Count)
	assert.Zero(t, analytics.Daily[1].AverageRating)

	assert.Equal(t, int64(2), analytics.CategoryBreakdown["food"])
	assert.Equal(t, int64(1), analytics.SentimentBreakdown["negative"])

	// Unrated submissions stay out of the distribution.
	assert.Equal(t, map[string]int64{"5": 1, "3": 1}, analytics.RatingDistribution)
}

func TestAnalyzer_Analyze_DefaultsWindow(t *testing.T) {
	repo := new(mockRepository)
	analyzer := NewAnalyzer(testLogger(), repo)

	ctx := context.Background()
	repo.On("ListSince", ctx, domainFeedback.WindowFilter{Days: 30}).Return([]domainFeedback.Feedback{}, nil)

	analytics, err := analyzer.Analyze(ctx, domainFeedback.WindowFilter{})

	require.NoError(t, err)
	assert.Equal(t, 30, analytics.WindowDays)
	assert.Zero(t, analytics.TotalSubmissions)
	assert.Empty(t, analytics.Daily)
}

func TestAnalyzer_Analyze_RepositoryError(t *testing.T) {
	repo := new(mockRepository)
	analyzer := NewAnalyzer(testLogger(), repo)

	ctx := context.Background()
	repo.On("ListSince", ctx, domainFeedback.WindowFilter{Days: 30}).Return(nil, errors.New("timeout"))

	analytics, err := analyzer.Analyze(ctx, domainFeedback.WindowFilter{Days: 30})

	assert.Nil(t, analytics)
	assert.Error(t, err)
}
