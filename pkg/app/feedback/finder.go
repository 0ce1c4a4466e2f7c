package feedback

import (
	"context"

	domainFeedback "github.com/RHD-founder/thukpa/pkg/domain/feedback"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Finder --dir=. --output=./mocks --filename=feedback_finder_mock.go --case=underscore --with-expecter
type Finder interface {
	Get(ctx context.Context, id uuid.UUID) (*domainFeedback.Feedback, error)
	List(ctx context.Context, filter domainFeedback.ListFilter) ([]domainFeedback.Feedback, int64, error)
}

type finder struct {
	logger *logrus.Logger
	repo   domainFeedback.Repository
}

func NewFinder(logger *logrus.Logger, repo domainFeedback.Repository) Finder {
	return &finder{
		logger: logger,
		repo:   repo,
	}
}

func (f *finder) Get(ctx context.Context, id uuid.UUID) (*domainFeedback.Feedback, error) {
	return f.repo.Get(ctx, id)
}

func (f *finder) List(ctx context.Context, filter domainFeedback.ListFilter) ([]domainFeedback.Feedback, int64, error) {
	entities, total, err := f.repo.List(ctx, filter)
	if err != nil {
		f.logger.WithError(err).Error("failed to list feedback")
		return nil, 0, err
	}
	return entities, total, nil
}
