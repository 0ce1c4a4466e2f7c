package router

import (
	"errors"

	handlers "github.com/RHD-founder/thukpa/pkg/handlers/http"
	"github.com/RHD-founder/thukpa/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

var ErrIncompleteHandlerTransport = errors.New("incomplete handler transport")

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    handlers.HandlerTransport
}

func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport handlers.HandlerTransport,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	ht := r.handlerTransport
	if ht.CreateFeedbackHandler == nil || ht.LoginHandler == nil {
		return ErrIncompleteHandlerTransport
	}

	router.Get("/version", ht.GetVersionHandler.Handle)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.Post("/login", ht.LoginHandler.Handle)
			auth.Post("/logout", r.middlewareTransport.AuthMiddleware.Middleware(), ht.LogoutHandler.Handle)
			auth.Get("/me", r.middlewareTransport.AuthMiddleware.Middleware(), ht.MeHandler.Handle)
		}

		// Public submission endpoint
		v1.Post("/feedback", ht.CreateFeedbackHandler.Handle)

		admin := v1.Group("", r.middlewareTransport.AuthMiddleware.Middleware())
		{
			feedback := admin.Group("/feedback")
			{
				feedback.Get("", ht.ListFeedbackHandler.Handle)
				feedback.Get("/stats", ht.FeedbackStatsHandler.Handle)
				feedback.Get("/export", ht.ExportFeedbackHandler.Handle)
				feedback.Get("/:feedback_id", ht.GetFeedbackHandler.Handle)
				feedback.Put("/:feedback_id", ht.UpdateFeedbackStatusHandler.Handle)
				feedback.Delete("/:feedback_id", ht.DeleteFeedbackHandler.Handle)
			}

			admin.Get("/analytics", ht.AnalyticsHandler.Handle)

			security := admin.Group("/admin/security")
			{
				security.Get("", ht.SecurityStatsHandler.Handle)
				security.Get("/events", ht.ThreatEventsHandler.Handle)
				security.Post("/block", ht.BlockDeviceHandler.Handle)
				security.Post("/unblock", ht.UnblockDeviceHandler.Handle)
			}

			admin.Get("/admin/audit", ht.AuditLogsHandler.Handle)
		}
	}
	return nil
}
