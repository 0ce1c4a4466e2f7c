package feedback

import (
	"context"
	"fmt"

	"github.com/RHD-founder/thukpa/pkg/domain"
	domainFeedback "github.com/RHD-founder/thukpa/pkg/domain/feedback"
	"github.com/RHD-founder/thukpa/pkg/handlers/http/request"
	"github.com/RHD-founder/thukpa/pkg/infra/prometheus"
	"github.com/RHD-founder/thukpa/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Submission carries request metadata that is stored alongside the feedback
// but never exposed through the API.
type Submission struct {
	IPAddress string
	UserAgent string
}

//go:generate mockery --name=Creator --dir=. --output=./mocks --filename=feedback_creator_mock.go --case=underscore --with-expecter
type Creator interface {
	Create(ctx context.Context, req *request.CreateFeedbackRequest, meta Submission) (*domainFeedback.Feedback, error)
}

type creator struct {
	logger *logrus.Logger
	repo   domainFeedback.Repository
}

func NewCreator(logger *logrus.Logger, repo domainFeedback.Repository) Creator {
	return &creator{
		logger: logger,
		repo:   repo,
	}
}

func (c *creator) Create(
	ctx context.Context,
	req *request.CreateFeedbackRequest,
	meta Submission,
) (*domainFeedback.Feedback, error) {
	entity := &domainFeedback.Feedback{
		Name:        utils.SanitizeInput(req.Name),
		Contact:     utils.SanitizeInput(req.Contact),
		Email:       utils.SanitizeInput(req.Email),
		Phone:       utils.SanitizeInput(req.Phone),
		Rating:      req.Rating,
		Comments:    utils.SanitizeInput(req.Comments),
		Location:    utils.SanitizeInput(req.Location),
		Category:    domainFeedback.Category(req.Category),
		VisitDate:   req.VisitDate,
		IsAnonymous: req.IsAnonymous,
		Status:      domainFeedback.StatusNew,
		IPAddress:   meta.IPAddress,
		UserAgent:   utils.Truncate(meta.UserAgent, 256),
	}

	if len(req.Tags) > 0 {
		tags := make(domain.TagsJSON, 0, len(req.Tags))
		for _, tag := range req.Tags {
			if cleaned := utils.SanitizeInput(tag); cleaned != "" {
				tags = append(tags, cleaned)
			}
		}
		entity.Tags = tags
	}

	entity.Sentiment = AnalyzeSentiment(entity.Rating, entity.Comments)

	if err := c.repo.Create(ctx, entity); err != nil {
		c.logger.WithError(err).Error("failed to store feedback")
		return nil, fmt.Errorf("failed to store feedback: %w", err)
	}

	category := string(entity.Category)
	if category == "" {
		category = "uncategorized"
	}
	prometheus.FeedbackSubmissionsTotal.WithLabelValues(category).Inc()

	c.logger.WithFields(logrus.Fields{
		"feedback_id": entity.ID,
		"category":    entity.Category,
		"sentiment":   entity.Sentiment,
	}).Info("feedback submitted")

	return entity, nil
}
