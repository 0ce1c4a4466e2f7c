package feedback

import (
	"context"
	"time"

	domainFeedback "github.com/RHD-founder/thukpa/pkg/domain/feedback"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=StatsProvider --dir=. --output=./mocks --filename=feedback_stats_provider_mock.go --case=underscore --with-expecter
type StatsProvider interface {
	GetStats(ctx context.Context) (*domainFeedback.Stats, error)
}

type statsProvider struct {
	logger *logrus.Logger
	repo   domainFeedback.Repository
	now    func() time.Time
}

func NewStatsProvider(logger *logrus.Logger, repo domainFeedback.Repository) StatsProvider {
	return &statsProvider{
		logger: logger,
		repo:   repo,
		now:    time.Now,
	}
}

func (s *statsProvider) GetStats(ctx context.Context) (*domainFeedback.Stats, error) {
	stats, err := s.repo.Stats(ctx, s.now())
	if err != nil {
		s.logger.WithError(err).Error("failed to compute feedback stats")
		return nil, err
	}
	return stats, nil
}
