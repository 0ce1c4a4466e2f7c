package auth

import (
	"context"
	"time"

	"github.com/RHD-founder/thukpa/pkg/common"
	"github.com/RHD-founder/thukpa/pkg/domain"
	"github.com/RHD-founder/thukpa/pkg/domain/session"
	"github.com/RHD-founder/thukpa/pkg/domain/user"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ClientInfo identifies the device behind a login attempt.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

//go:generate mockery --name=Authenticator --dir=. --output=./mocks --filename=authenticator_mock.go --case=underscore --with-expecter
type Authenticator interface {
	Login(ctx context.Context, email, password string, client ClientInfo) (*user.User, *session.Session, error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (*user.User, *session.Session, error)
}

type authenticator struct {
	logger     *logrus.Logger
	users      user.Repository
	sessions   session.Repository
	sessionTTL time.Duration
	now        func() time.Time
}

func NewAuthenticator(
	logger *logrus.Logger,
	users user.Repository,
	sessions session.Repository,
	sessionTTL time.Duration,
) Authenticator {
	if sessionTTL <= 0 {
		sessionTTL = common.SessionCacheTTL
	}
	return &authenticator{
		logger:     logger,
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

func (a *authenticator) Login(
	ctx context.Context,
	email, password string,
	client ClientInfo,
) (*user.User, *session.Session, error) {
	account, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFoundError(err) {
			// Burn a comparison so unknown emails cost the same as wrong passwords.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !account.Active {
		return nil, nil, domain.ErrAccountInactive
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, nil, err
	}

	now := a.now()
	s := &session.Session{
		Token:     token,
		UserID:    account.ID,
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(a.sessionTTL),
	}
	if err := a.sessions.Save(ctx, s); err != nil {
		a.logger.WithError(err).Error("failed to save session")
		return nil, nil, err
	}

	if err := a.users.UpdateLastLogin(ctx, account.ID, now); err != nil {
		a.logger.WithError(err).Warn("failed to update last login timestamp")
	}

	a.logger.WithFields(logrus.Fields{
		"user_id": account.ID,
		"ip":      client.IPAddress,
	}).Info("admin logged in")

	return account, s, nil
}

func (a *authenticator) Logout(ctx context.Context, token string) error {
	return a.sessions.Delete(ctx, token)
}

// Resolve maps a session token to its user. Expired sessions are deleted on
// sight.
func (a *authenticator) Resolve(ctx context.Context, token string) (*user.User, *session.Session, error) {
	s, err := a.sessions.Get(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if s.Expired(a.now()) {
		_ = a.sessions.Delete(ctx, token)
		return nil, nil, domain.NewNotFoundError("session", token)
	}

	account, err := a.users.GetByID(ctx, s.UserID)
	if err != nil {
		return nil, nil, err
	}
	if !account.Active {
		return nil, nil, domain.ErrAccountInactive
	}
	return account, s, nil
}

// dummyHash is a bcrypt hash of a random string, used to equalize timing on
// unknown accounts.
var dummyHash = []byte("$2a$12$C6UzMDM.H6dfI/f/IKcEeO7ZDLQ8pLVYHFvGvn/hQ38KAl3PzW3fa")
