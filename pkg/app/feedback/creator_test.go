package feedback

import (
	"context"
	"errors"
	"testing"
	"time"

	domainFeedback "github.com/RHD-founder/thukpa/pkg/domain/feedback"
	"github.com/RHD-founder/thukpa/pkg/handlers/http/request"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockRepository is a mock for domainFeedback.Repository
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, feedback *domainFeedback.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *mockRepository) Get(ctx context.Context, id uuid.UUID) (*domainFeedback.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainFeedback.Feedback), args.Error(1)
}

func (m *mockRepository) List(
	ctx context.Context,
	filter domainFeedback.ListFilter,
) ([]domainFeedback.Feedback, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domainFeedback.Feedback), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) ListSince(
	ctx context.Context,
	filter domainFeedback.WindowFilter,
) ([]domainFeedback.Feedback, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainFeedback.Feedback), args.Error(1)
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domainFeedback.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRepository) Stats(ctx context.Context, today time.Time) (*domainFeedback.Stats, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainFeedback.Stats), args.Error(1)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel) // Reduce noise in tests
	return logger
}

func TestCreator_Create_Success(t *testing.T) {
	repo := new(mockRepository)
	creator := NewCreator(testLogger(), repo)

	rating := 5
	req := &request.CreateFeedbackRequest{
		Name:     "Tenzin",
		Email:    "tenzin@example.com",
		Rating:   &rating,
		Comments: "Amazing thukpa, will come back",
		Category: "food",
		Tags:     []string{"  lunch ", "<script>spicy</script>"},
	}

	ctx := context.Background()
	var stored *domainFeedback.Feedback
	repo.On("Create", ctx, mock.AnythingOfType("*feedback.Feedback")).Return(nil).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domainFeedback.Feedback)
	})

	result, err := creator.Create(ctx, req, Submission{IPAddress: "10.0.0.1", UserAgent: "Mozilla/5.0"})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, stored, result)
	assert.Equal(t, "Tenzin", result.Name)
	assert.Equal(t, domainFeedback.CategoryFood, result.Category)
	assert.Equal(t, domainFeedback.StatusNew, result.Status)
	assert.Equal(t, domainFeedback.SentimentPositive, result.Sentiment)
	assert.Equal(t, "10.0.0.1", result.IPAddress)
	assert.Equal(t, []string{"lunch", "scriptspicy/script"}, []string(result.Tags))
	repo.AssertExpectations(t)
}

func TestCreator_Create_TruncatesUserAgent(t *testing.T) {
	repo := new(mockRepository)
	creator := NewCreator(testLogger(), repo)

	longUA := make([]byte, 600)
	for i := range longUA {
		longUA[i] = 'a'
	}

	ctx := context.Background()
	repo.On("Create", ctx, mock.AnythingOfType("*feedback.Feedback")).Return(nil)

	result, err := creator.Create(ctx, &request.CreateFeedbackRequest{
		Name:     "Guest",
		Comments: "fine",
	}, Submission{UserAgent: string(longUA)})

	require.NoError(t, err)
	assert.Len(t, result.UserAgent, 256)
}

func TestCreator_Create_SentimentFromComments(t *testing.T) {
	repo := new(mockRepository)
	creator := NewCreator(testLogger(), repo)

	ctx := context.Background()
	repo.On("Create", ctx, mock.AnythingOfType("*feedback.Feedback")).Return(nil)

	result, err := creator.Create(ctx, &request.CreateFeedbackRequest{
		Name:     "Guest",
		Comments: "service was slow and the soup was cold",
	}, Submission{})

	require.NoError(t, err)
	assert.Equal(t, domainFeedback.SentimentNegative, result.Sentiment)
}

func TestCreator_Create_RepositoryError(t *testing.T) {
	repo := new(mockRepository)
	creator := NewCreator(testLogger(), repo)

	ctx := context.Background()
	repo.On("Create", ctx, mock.AnythingOfType("*feedback.Feedback")).Return(errors.New("connection refused"))

	result, err := creator.Create(ctx, &request.CreateFeedbackRequest{Name: "Guest", Comments: "ok"}, Submission{})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store feedback")
}
