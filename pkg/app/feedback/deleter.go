package feedback

import (
	"context"

	domainFeedback "github.com/RHD-founder/thukpa/pkg/domain/feedback"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Deleter --dir=. --output=./mocks --filename=feedback_deleter_mock.go --case=underscore --with-expecter
type Deleter interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

type deleter struct {
	logger *logrus.Logger
	repo   domainFeedback.Repository
}

func NewDeleter(logger *logrus.Logger, repo domainFeedback.Repository) Deleter {
	return &deleter{
		logger: logger,
		repo:   repo,
	}
}

func (d *deleter) Delete(ctx context.Context, id uuid.UUID) error {
	if err := d.repo.Delete(ctx, id); err != nil {
		return err
	}
	d.logger.WithField("feedback_id", id).Info("feedback deleted")
	return nil
}
