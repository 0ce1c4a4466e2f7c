package feedback

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	domainFeedback "github.com/RHD-founder/thukpa/pkg/domain/feedback"
	"github.com/sirupsen/logrus"
)

var exportHeader = []string{
	"id", "name", "email", "phone", "rating", "comments", "location",
	"category", "sentiment", "status", "tags", "visit_date", "created_at",
}

//go:generate mockery --name=Exporter --dir=. --output=./mocks --filename=feedback_exporter_mock.go --case=underscore --with-expecter
type Exporter interface {
	ExportCSV(ctx context.Context, filter domainFeedback.WindowFilter) ([]byte, error)
}

type exporter struct {
	logger *logrus.Logger
	repo   domainFeedback.Repository
}

func NewExporter(logger *logrus.Logger, repo domainFeedback.Repository) Exporter {
	return &exporter{
		logger: logger,
		repo:   repo,
	}
}

func (e *exporter) ExportCSV(ctx context.Context, filter domainFeedback.WindowFilter) ([]byte, error) {
	entities, err := e.repo.ListSince(ctx, filter)
	if err != nil {
		e.logger.WithError(err).Error("failed to load feedback for export")
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}

	for i := range entities {
		entity := &entities[i]

		rating := ""
		if entity.Rating != nil {
			rating = strconv.Itoa(*entity.Rating)
		}
		visitDate := ""
		if entity.VisitDate != nil {
			visitDate = entity.VisitDate.Format(time.DateOnly)
		}

		record := []string{
			entity.ID.String(),
			entity.Name,
			entity.Email,
			entity.Phone,
			rating,
			entity.Comments,
			entity.Location,
			string(entity.Category),
			string(entity.Sentiment),
			string(entity.Status),
			strings.Join(entity.Tags, ";"),
			visitDate,
			entity.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write export record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush export: %w", err)
	}

	e.logger.WithField("rows", len(entities)).Info("feedback exported")
	return buf.Bytes(), nil
}
