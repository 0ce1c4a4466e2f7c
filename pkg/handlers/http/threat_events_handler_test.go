package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RHD-founder/thukpa/pkg/domain/threat"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockThreatEventRepository is a mock for threat.Repository
type mockThreatEventRepository struct {
	mock.Mock
}

func (m *mockThreatEventRepository) Create(ctx context.Context, event *threat.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockThreatEventRepository) ListRecent(ctx context.Context, since time.Time, limit int) ([]threat.Event, error) {
	args := m.Called(ctx, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]threat.Event), args.Error(1)
}

func (m *mockThreatEventRepository) CountByType(ctx context.Context) (map[threat.Type]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[threat.Type]int64), args.Error(1)
}

func setupThreatEventsApp(repo threat.Repository) *fiber.App {
	app := fiber.New()
	app.Get("/api/v1/admin/security/events", NewThreatEventsHandler(testHandlerLogger(), repo).Handle)
	return app
}

func TestThreatEventsHandler_Success(t *testing.T) {
	repo := new(mockThreatEventRepository)
	app := setupThreatEventsApp(repo)

	events := []threat.Event{
		{Type: threat.TypeScraping, Severity: threat.SeverityMedium, IP: "203.0.113.9"},
		{Type: threat.TypeBruteForce, Severity: threat.SeverityHigh, IP: "203.0.113.9"},
	}
	counts := map[threat.Type]int64{
		threat.TypeScraping:   7,
		threat.TypeBruteForce: 2,
	}

	repo.On("ListRecent", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		return time.Since(since) > 47*time.Hour && time.Since(since) < 49*time.Hour
	}), 25).Return(events, nil)
	repo.On("CountByType", mock.Anything).Return(counts, nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/admin/security/events?hours=48&limit=25", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Events []threat.Event        `json:"events"`
		Counts map[threat.Type]int64 `json:"counts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Len(t, payload.Events, 2)
	assert.Equal(t, int64(7), payload.Counts[threat.TypeScraping])
	repo.AssertExpectations(t)
}

func TestThreatEventsHandler_ClampsOutOfRangeParams(t *testing.T) {
	repo := new(mockThreatEventRepository)
	app := setupThreatEventsApp(repo)

	repo.On("ListRecent", mock.Anything, mock.AnythingOfType("time.Time"), 100).Return([]threat.Event{}, nil)
	repo.On("CountByType", mock.Anything).Return(map[threat.Type]int64{}, nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/admin/security/events?hours=9999&limit=-5", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	repo.AssertExpectations(t)
}

func TestThreatEventsHandler_RepositoryError(t *testing.T) {
	repo := new(mockThreatEventRepository)
	app := setupThreatEventsApp(repo)

	repo.On("ListRecent", mock.Anything, mock.AnythingOfType("time.Time"), 100).
		Return(nil, errors.New("connection refused"))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/admin/security/events", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
