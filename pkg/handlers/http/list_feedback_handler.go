package http

import (
	appFeedback "github.com/RHD-founder/thukpa/pkg/app/feedback"
	domainFeedback "github.com/RHD-founder/thukpa/pkg/domain/feedback"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type listFeedbackHandler struct {
	logger *logrus.Logger
	finder appFeedback.Finder
}

func NewListFeedbackHandler(logger *logrus.Logger, finder appFeedback.Finder) Handler {
	return &listFeedbackHandler{
		logger: logger,
		finder: finder,
	}
}

// Handle @Summary List feedback
// @Description Returns paginated feedback filtered by query, status, category and rating
// @Tags Feedback
// @Produce json
// @Router /api/v1/feedback [get]
func (h *listFeedbackHandler) Handle(c *fiber.Ctx) error {
	filter := domainFeedback.ListFilter{
		Query:    c.Query("q"),
		Status:   domainFeedback.Status(c.Query("status")),
		Category: domainFeedback.Category(c.Query("category")),
		Rating:   c.QueryInt("rating"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 20),
	}

	entities, total, err := h.finder.List(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list feedback"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  entities,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}
