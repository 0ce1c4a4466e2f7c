package http

import (
	"fmt"
	"time"

	appFeedback "github.com/RHD-founder/thukpa/pkg/app/feedback"
	domainFeedback "github.com/RHD-founder/thukpa/pkg/domain/feedback"
	"github.com/RHD-founder/thukpa/pkg/infra/auditlogs"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type exportFeedbackHandler struct {
	logger   *logrus.Logger
	exporter appFeedback.Exporter
	audit    auditlogs.Service
}

func NewExportFeedbackHandler(
	logger *logrus.Logger,
	exporter appFeedback.Exporter,
	audit auditlogs.Service,
) Handler {
	return &exportFeedbackHandler{
		logger:   logger,
		exporter: exporter,
		audit:    audit,
	}
}

// Handle @Summary Export feedback as CSV
// @Tags Feedback
// @Produce text/csv
// @Router /api/v1/feedback/export [get]
func (h *exportFeedbackHandler) Handle(c *fiber.Ctx) error {
	filter := domainFeedback.WindowFilter{
		Days:     c.QueryInt("days", 30),
		Category: domainFeedback.Category(c.Query("category")),
	}

	data, err := h.exporter.ExportCSV(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to export feedback"})
	}

	h.audit.Emit(c, auditlogs.Event{
		Action:   auditlogs.ActionExport,
		Resource: "feedback",
		Details:  map[string]interface{}{"days": filter.Days, "category": filter.Category},
	})

	filename := fmt.Sprintf("feedback-%s.csv", time.Now().Format(time.DateOnly))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Status(fiber.StatusOK).Send(data)
}
