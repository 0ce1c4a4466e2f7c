package auditlogs

import (
	"context"
	"sync"
	"time"

	"github.com/RHD-founder/thukpa/pkg/common"
	"github.com/RHD-founder/thukpa/pkg/domain"
	"github.com/RHD-founder/thukpa/pkg/domain/auditlog"
	"github.com/RHD-founder/thukpa/pkg/domain/user"
	"github.com/RHD-founder/thukpa/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const persistTimeout = 5 * time.Second

type Service interface {
	Emit(c *fiber.Ctx, event Event)
	Close() error
}

type service struct {
	logger *logrus.Logger
	repo   auditlog.Repository
	wg     sync.WaitGroup
}

func NewService(repo auditlog.Repository, logger *logrus.Logger) Service {
	return &service{
		logger: logger,
		repo:   repo,
	}
}

// Emit persists the entry in the background so request handling never waits
// on the audit trail.
func (s *service) Emit(c *fiber.Ctx, event Event) {
	entry := &auditlog.Entry{
		Action:     event.Action,
		Resource:   event.Resource,
		ResourceID: event.ResourceID,
		Details:    domain.DetailsJSON(event.Details),
		IPAddress:  utils.ClientIP(c),
		UserAgent:  c.Get(fiber.HeaderUserAgent),
	}
	if actor, ok := c.Locals(string(common.UserContextKey)).(*user.User); ok && actor != nil {
		id := actor.ID
		entry.UserID = &id
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.repo.Create(ctx, entry); err != nil {
			s.logger.WithError(err).WithField("action", entry.Action).Warn("failed to persist audit log entry")
		}
	}()
}

// Close waits for in-flight writes to finish.
func (s *service) Close() error {
	s.wg.Wait()
	return nil
}
