package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Feedback
	CreateFeedbackHandler       Handler
	ListFeedbackHandler         Handler
	GetFeedbackHandler          Handler
	UpdateFeedbackStatusHandler Handler
	DeleteFeedbackHandler       Handler
	FeedbackStatsHandler        Handler
	AnalyticsHandler            Handler
	ExportFeedbackHandler       Handler

	// Auth
	LoginHandler  Handler
	LogoutHandler Handler
	MeHandler     Handler

	// Security admin
	SecurityStatsHandler Handler
	ThreatEventsHandler  Handler
	BlockDeviceHandler   Handler
	UnblockDeviceHandler Handler
	AuditLogsHandler     Handler

	// Misc
	GetVersionHandler Handler
}
