package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/RHD-founder/thukpa/pkg/domain"
	"github.com/RHD-founder/thukpa/pkg/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel) // Reduce noise in tests
	return logger
}

func TestEnsureAdmin_CreatesAccount(t *testing.T) {
	users := new(mockUserRepository)
	users.On("GetByEmail", mock.Anything, "admin@thukpa.local").
		Return(nil, domain.NewNotFoundError("user", "admin@thukpa.local"))

	var created *user.User
	users.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*user.User)
		}).
		Return(nil)

	err := EnsureAdmin(context.Background(), quietLogger(), users, "admin@thukpa.local", "changeme123", "Admin")
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, "admin@thukpa.local", created.Email)
	assert.Equal(t, user.RoleAdmin, created.Role)
	assert.True(t, created.Active)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("changeme123")))
	users.AssertExpectations(t)
}

func TestEnsureAdmin_ExistingAccountUntouched(t *testing.T) {
	users := new(mockUserRepository)
	users.On("GetByEmail", mock.Anything, "admin@thukpa.local").
		Return(&user.User{Email: "admin@thukpa.local"}, nil)

	err := EnsureAdmin(context.Background(), quietLogger(), users, "admin@thukpa.local", "changeme123", "Admin")
	require.NoError(t, err)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEnsureAdmin_SkipsWithoutCredentials(t *testing.T) {
	users := new(mockUserRepository)

	require.NoError(t, EnsureAdmin(context.Background(), quietLogger(), users, "", "", ""))
	users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestEnsureAdmin_LookupError(t *testing.T) {
	users := new(mockUserRepository)
	users.On("GetByEmail", mock.Anything, "admin@thukpa.local").
		Return(nil, errors.New("connection refused"))

	err := EnsureAdmin(context.Background(), quietLogger(), users, "admin@thukpa.local", "changeme123", "Admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to look up admin account")
}
