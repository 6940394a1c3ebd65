// Package router registers the auth and user management routes.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	auditsvc "nova_crm/internal/api/audit/service"
	authhdl "nova_crm/internal/api/auth/handler"
	authsvc "nova_crm/internal/api/auth/service"
	"nova_crm/internal/api/middleware"
	apirouter "nova_crm/internal/api/router"
	"nova_crm/internal/mailer"
)

// Register returns the route registration for authentication and users.
func Register(mail *mailer.Mailer, audit *auditsvc.Recorder) apirouter.RegisterFunc {
	return func(v1 fiber.Router) error {
		users, err := authsvc.NewUserService()
		if err != nil {
			return fmt.Errorf("create UserService: %w", err)
		}

		userHandler := authhdl.NewUserHandler(users, mail, audit)
		adminHandler := authhdl.NewAdminUserHandler(users, audit)

		// Public routes go straight on the router, never through a group
		// carrying auth middleware.
		v1.Post("/auth/register", userHandler.HandleRegister)
		v1.Post("/auth/verify-email", userHandler.HandleVerifyEmail)
		v1.Post("/auth/login", userHandler.HandleLogin)

		auth := []fiber.Handler{middleware.AuthMiddleware()}

		apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/logout", auth, userHandler.HandleLogout)
		apirouter.RegisterRouteWithMiddleware(v1, "/auth", "GET", "/me", auth, userHandler.HandleGetMe)
		apirouter.RegisterRouteWithMiddleware(v1, "/auth", "PATCH", "/me", auth, userHandler.HandleUpdateMe)

		apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "/", auth, adminHandler.HandleList)
		apirouter.RegisterRouteWithMiddleware(v1, "/users", "PATCH", "/:id", auth, adminHandler.HandleUpdate)

		return nil
	}
}
