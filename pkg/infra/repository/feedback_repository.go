package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RHD-founder/thukpa/pkg/domain"
	"github.com/RHD-founder/thukpa/pkg/domain/feedback"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const recentSubmissionsLimit = 10

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) feedback.Repository {
	return &feedbackRepository{
		db: db,
	}
}

func (r *feedbackRepository) Create(ctx context.Context, entity *feedback.Feedback) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *feedbackRepository) Get(ctx context.Context, id uuid.UUID) (*feedback.Feedback, error) {
	entity := new(feedback.Feedback)
	if err := r.db.WithContext(ctx).First(entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("feedback", id.String())
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return entity, nil
}

func (r *feedbackRepository) List(ctx context.Context, filter feedback.ListFilter) ([]feedback.Feedback, int64, error) {
	query := r.db.WithContext(ctx).Model(&feedback.Feedback{})

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("name ILIKE ? OR comments ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Rating > 0 {
		query = query.Where("rating = ?", filter.Rating)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count feedback: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	var entities []feedback.Feedback
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entities).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list feedback: %w", err)
	}
	return entities, total, nil
}

func (r *feedbackRepository) ListSince(ctx context.Context, filter feedback.WindowFilter) ([]feedback.Feedback, error) {
	days := filter.Days
	if days < 1 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	query := r.db.WithContext(ctx).Where("created_at >= ?", since)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var entities []feedback.Feedback
	if err := query.Order("created_at ASC").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to list feedback window: %w", err)
	}
	return entities, nil
}

func (r *feedbackRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status feedback.Status) error {
	result := r.db.WithContext(ctx).
		Model(&feedback.Feedback{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update feedback status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("feedback", id.String())
	}
	return nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&feedback.Feedback{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete feedback: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("feedback", id.String())
	}
	return nil
}

func (r *feedbackRepository) Stats(ctx context.Context, today time.Time) (*feedback.Stats, error) {
	stats := &feedback.Stats{
		CategoryBreakdown:  make(map[string]int64),
		RatingDistribution: make(map[string]int64),
	}

	model := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&feedback.Feedback{})
	}

	if err := model().Count(&stats.TotalSubmissions).Error; err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	dayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if err := model().Where("created_at >= ?", dayStart).Count(&stats.TodaySubmissions).Error; err != nil {
		return nil, fmt.Errorf("failed to count today submissions: %w", err)
	}

	var avg *float64
	if err := model().Select("AVG(rating)").Where("rating IS NOT NULL").Scan(&avg).Error; err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}
	if avg != nil {
		stats.AverageRating = *avg
	}

	if err := model().Where("is_anonymous = ?", true).Count(&stats.AnonymousCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count anonymous submissions: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(recentSubmissionsLimit).
		Find(&stats.RecentSubmissions).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent submissions: %w", err)
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var categories []bucket
	if err := model().
		Select("category AS key, COUNT(*) AS count").
		Where("category <> ''").
		Group("category").
		Scan(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to break down categories: %w", err)
	}
	for _, b := range categories {
		stats.CategoryBreakdown[b.Key] = b.Count
	}

	var ratings []bucket
	if err := model().
		Select("rating::text AS key, COUNT(*) AS count").
		Where("rating IS NOT NULL").
		Group("rating").
		Scan(&ratings).Error; err != nil {
		return nil, fmt.Errorf("failed to break down ratings: %w", err)
	}
	for _, b := range ratings {
		stats.RatingDistribution[b.Key] = b.Count
	}

	return stats, nil
}
