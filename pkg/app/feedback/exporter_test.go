package feedback

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/RHD-founder/thukpa/pkg/domain"
	domainFeedback "github.com/RHD-founder/thukpa/pkg/domain/feedback"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_ExportCSV(t *testing.T) {
	repo := new(mockRepository)
	exporter := NewExporter(testLogger(), repo)

	id := uuid.New()
	visit := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	entities := []domainFeedback.Feedback{
		{
			ID:        id,
			Name:      "Dolma",
			Email:     "dolma@example.com",
			Rating:    intPtr(4),
			Comments:  "fresh ingredients",
			Category:  domainFeedback.CategoryFood,
			Sentiment: domainFeedback.SentimentPositive,
			Status:    domainFeedback.StatusNew,
			Tags:      domain.TagsJSON{"dinner", "family"},
			VisitDate: &visit,
			CreatedAt: time.Date(2025, 8, 16, 12, 0, 0, 0, time.UTC),
		},
	}

	ctx := context.Background()
	filter := domainFeedback.WindowFilter{Days: 30}
	repo.On("ListSince", ctx, filter).Return(entities, nil)

	data, err := exporter.ExportCSV(ctx, filter)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, exportHeader, records[0])
	row := records[1]
	assert.Equal(t, id.String(), row[0])
	assert.Equal(t, "Dolma", row[1])
	assert.Equal(t, "4", row[4])
	assert.Equal(t, "dinner;family", row[10])
	assert.Equal(t, "2025-08-15", row[11])
	assert.Equal(t, "2025-08-16T12:00:00Z", row[12])
}

func TestExporter_ExportCSV_Empty(t *testing.T) {
	repo := new(mockRepository)
	exporter := NewExporter(testLogger(), repo)

	ctx := context.Background()
	filter := domainFeedback.WindowFilter{Days: 7}
	repo.On("ListSince", ctx, filter).Return([]domainFeedback.Feedback{}, nil)

	data, err := exporter.ExportCSV(ctx, filter)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, exportHeader, records[0])
}

func TestExporter_ExportCSV_RepositoryError(t *testing.T) {
	repo := new(mockRepository)
	exporter := NewExporter(testLogger(), repo)

	ctx := context.Background()
	filter := domainFeedback.WindowFilter{Days: 30}
	repo.On("ListSince", ctx, filter).Return(nil, errors.New("connection reset"))

	data, err := exporter.ExportCSV(ctx, filter)

	assert.Nil(t, data)
	assert.Error(t, err)
}
