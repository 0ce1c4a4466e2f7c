package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/RHD-founder/thukpa/pkg/domain/auditlog"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockAuditLogRepository is a mock for auditlog.Repository
type mockAuditLogRepository struct {
	mock.Mock
}

func (m *mockAuditLogRepository) Create(ctx context.Context, entry *auditlog.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockAuditLogRepository) ListRecent(ctx context.Context, limit int) ([]auditlog.Entry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]auditlog.Entry), args.Error(1)
}

func setupAuditLogsApp(repo auditlog.Repository) *fiber.App {
	app := fiber.New()
	app.Get("/api/v1/admin/audit", NewAuditLogsHandler(testHandlerLogger(), repo).Handle)
	return app
}

func TestAuditLogsHandler_Success(t *testing.T) {
	repo := new(mockAuditLogRepository)
	app := setupAuditLogsApp(repo)

	repo.On("ListRecent", mock.Anything, 10).Return([]auditlog.Entry{
		{Action: "feedback_delete", Resource: "feedback", IPAddress: "198.51.100.4"},
	}, nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/admin/audit?limit=10", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Entries []auditlog.Entry `json:"entries"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Entries, 1)
	assert.Equal(t, "feedback_delete", payload.Entries[0].Action)
	repo.AssertExpectations(t)
}

func TestAuditLogsHandler_DefaultsLimit(t *testing.T) {
	repo := new(mockAuditLogRepository)
	app := setupAuditLogsApp(repo)

	repo.On("ListRecent", mock.Anything, 50).Return([]auditlog.Entry{}, nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/admin/audit?limit=0", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	repo.AssertExpectations(t)
}

func TestAuditLogsHandler_RepositoryError(t *testing.T) {
	repo := new(mockAuditLogRepository)
	app := setupAuditLogsApp(repo)

	repo.On("ListRecent", mock.Anything, 50).Return(nil, errors.New("connection refused"))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/admin/audit", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
