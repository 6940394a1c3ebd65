// Package router registers the admin audit trail routes.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	audithdl "nova_crm/internal/api/audit/handler"
	auditsvc "nova_crm/internal/api/audit/service"
	models "nova_crm/internal/api/auth/models"
	authsvc "nova_crm/internal/api/auth/service"
	"nova_crm/internal/api/middleware"
	apirouter "nova_crm/internal/api/router"
)

// Register returns the route registration for the audit trail.
func Register(recorder *auditsvc.Recorder) apirouter.RegisterFunc {
	return func(v1 fiber.Router) error {
		users, err := authsvc.NewUserService()
		if err != nil {
			return fmt.Errorf("create UserService: %w", err)
		}
		handler := audithdl.NewAuditHandler(recorder, users)

		adminOnly := []fiber.Handler{
			middleware.AuthMiddleware(),
			middleware.RequireRole(models.RoleAdmin),
		}

		apirouter.RegisterRouteWithMiddleware(v1, "/admin", "GET", "/audit-logs", adminOnly, handler.HandleList)

		return nil
	}
}
