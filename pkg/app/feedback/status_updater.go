package feedback

import (
	"context"

	domainFeedback "github.com/RHD-founder/thukpa/pkg/domain/feedback"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=StatusUpdater --dir=. --output=./mocks --filename=feedback_status_updater_mock.go --case=underscore --with-expecter
type StatusUpdater interface {
	Update(ctx context.Context, id uuid.UUID, status domainFeedback.Status) error
}

type statusUpdater struct {
	logger *logrus.Logger
	repo   domainFeedback.Repository
}

func NewStatusUpdater(logger *logrus.Logger, repo domainFeedback.Repository) StatusUpdater {
	return &statusUpdater{
		logger: logger,
		repo:   repo,
	}
}

func (s *statusUpdater) Update(ctx context.Context, id uuid.UUID, status domainFeedback.Status) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"feedback_id": id,
		"status":      status,
	}).Info("feedback status updated")
	return nil
}
