// Package router registers the notification feed routes.
package router

import (
	"github.com/gofiber/fiber/v3"

	"nova_crm/internal/api/middleware"
	notifhdl "nova_crm/internal/api/notification/handler"
	notifsvc "nova_crm/internal/api/notification/service"
	apirouter "nova_crm/internal/api/router"
)

// Register returns the route registration for the notification feed.
func Register(notifier *notifsvc.NotificationService) apirouter.RegisterFunc {
	return func(v1 fiber.Router) error {
		handler := notifhdl.NewNotificationHandler(notifier)

		auth := []fiber.Handler{middleware.AuthMiddleware()}

		apirouter.RegisterRouteWithMiddleware(v1, "/notifications", "GET", "/", auth, handler.HandleList)
		apirouter.RegisterRouteWithMiddleware(v1, "/notifications", "POST", "/read-all", auth, handler.HandleMarkAllRead)
		apirouter.RegisterRouteWithMiddleware(v1, "/notifications", "PATCH", "/:id/read", auth, handler.HandleMarkRead)

		return nil
	}
}
