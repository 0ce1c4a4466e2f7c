package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appAuth "github.com/RHD-founder/thukpa/pkg/app/auth"
	"github.com/RHD-founder/thukpa/pkg/common"
	"github.com/RHD-founder/thukpa/pkg/config"
	"github.com/RHD-founder/thukpa/pkg/domain"
	"github.com/RHD-founder/thukpa/pkg/domain/session"
	"github.com/RHD-founder/thukpa/pkg/domain/user"
	"github.com/RHD-founder/thukpa/pkg/infra/auditlogs"
	"github.com/RHD-founder/thukpa/pkg/infra/fingerprint"
	"github.com/RHD-founder/thukpa/pkg/infra/security"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockAuthenticator is a mock for appAuth.Authenticator
type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) Login(
	ctx context.Context,
	email, password string,
	client appAuth.ClientInfo,
) (*user.User, *session.Session, error) {
	args := m.Called(ctx, email, password, client)
	var account *user.User
	if args.Get(0) != nil {
		account = args.Get(0).(*user.User)
	}
	var s *session.Session
	if args.Get(1) != nil {
		s = args.Get(1).(*session.Session)
	}
	return account, s, args.Error(2)
}

func (m *mockAuthenticator) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockAuthenticator) Resolve(ctx context.Context, token string) (*user.User, *session.Session, error) {
	args := m.Called(ctx, token)
	var account *user.User
	if args.Get(0) != nil {
		account = args.Get(0).(*user.User)
	}
	var s *session.Session
	if args.Get(1) != nil {
		s = args.Get(1).(*session.Session)
	}
	return account, s, args.Error(2)
}

// mockAuditService is a mock for auditlogs.Service
type mockAuditService struct {
	mock.Mock
}

func (m *mockAuditService) Emit(c *fiber.Ctx, event auditlogs.Event) {
	m.Called(c, event)
}

func (m *mockAuditService) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newTestMonitor() *security.Monitor {
	return security.NewMonitor(config.DefaultSecurityConfig(), testHandlerLogger(), nil, nil)
}

func setupLoginApp(authenticator appAuth.Authenticator, audit auditlogs.Service) *fiber.App {
	app := fiber.New()
	handler := NewLoginHandler(
		testHandlerLogger(),
		authenticator,
		newTestMonitor(),
		fingerprint.NewGenerator(),
		audit,
		false,
	)
	app.Post("/api/v1/auth/login", handler.Handle)
	return app
}

func loginRequest(email, password string) *http.Request {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderUserAgent, "Mozilla/5.0")
	return req
}

func TestLoginHandler_Success(t *testing.T) {
	authenticator := new(mockAuthenticator)
	audit := new(mockAuditService)
	app := setupLoginApp(authenticator, audit)

	account := &user.User{
		ID:     uuid.New(),
		Email:  "admin@example.com",
		Name:   "Admin",
		Role:   user.RoleAdmin,
		Active: true,
	}
	s := &session.Session{
		Token:     "f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0",
		UserID:    account.ID,
		ExpiresAt: time.Now().Add(24 * time.Hour).UTC(),
	}

	authenticator.On("Login", mock.Anything, "admin@example.com", "password123", mock.AnythingOfType("auth.ClientInfo")).
		Return(account, s, nil)
	audit.On("Emit", mock.Anything, mock.MatchedBy(func(e auditlogs.Event) bool {
		return e.Action == auditlogs.ActionLogin
	})).Return()

	resp, err := app.Test(loginRequest("admin@example.com", "password123"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == common.SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "session cookie must be set")
	assert.Equal(t, s.Token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	userPayload, ok := payload["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "admin@example.com", userPayload["email"])
	assert.NotContains(t, payload, "token")
	audit.AssertExpectations(t)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	authenticator := new(mockAuthenticator)
	audit := new(mockAuditService)
	app := setupLoginApp(authenticator, audit)

	authenticator.On("Login", mock.Anything, "admin@example.com", "wrong", mock.AnythingOfType("auth.ClientInfo")).
		Return(nil, nil, domain.ErrInvalidCredentials)
	audit.On("Emit", mock.Anything, mock.MatchedBy(func(e auditlogs.Event) bool {
		return e.Action == auditlogs.ActionLoginFailed && e.Details["reason"] == "invalid_credentials"
	})).Return()

	resp, err := app.Test(loginRequest("admin@example.com", "wrong"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Cookies())
	audit.AssertExpectations(t)
}

func TestLoginHandler_InactiveAccount(t *testing.T) {
	authenticator := new(mockAuthenticator)
	audit := new(mockAuditService)
	app := setupLoginApp(authenticator, audit)

	authenticator.On("Login", mock.Anything, "admin@example.com", "password123", mock.AnythingOfType("auth.ClientInfo")).
		Return(nil, nil, domain.ErrAccountInactive)
	audit.On("Emit", mock.Anything, mock.MatchedBy(func(e auditlogs.Event) bool {
		return e.Details["reason"] == "account_inactive"
	})).Return()

	resp, err := app.Test(loginRequest("admin@example.com", "password123"))
	require.NoError(t, err)
	defer resp.Body.Close()

	// Inactive accounts are indistinguishable from bad credentials.
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginHandler_ValidationFailure(t *testing.T) {
	authenticator := new(mockAuthenticator)
	audit := new(mockAuditService)
	app := setupLoginApp(authenticator, audit)

	resp, err := app.Test(loginRequest("not-an-email", "password123"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	authenticator.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
