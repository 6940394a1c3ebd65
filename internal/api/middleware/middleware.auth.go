// Package middleware contains the HTTP middleware: token authentication and
// role enforcement.
package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "nova_crm/internal/api/base/handler"
	models "nova_crm/internal/api/auth/models"
	authsvc "nova_crm/internal/api/auth/service"
	"nova_crm/internal/common"
	"nova_crm/internal/global"
	"nova_crm/internal/logger"
)

// AuthManager bundles the token manager with the user lookup needed to attach
// the authenticated user to the request context.
type AuthManager struct {
	tokens *authsvc.TokenManager
	users  *authsvc.UserService
}

var (
	authManager *AuthManager
	authOnce    sync.Once
)

// GetAuthManager returns the process-wide AuthManager, building it on first
// use. Must not be called before global init has run.
func GetAuthManager() *AuthManager {
	authOnce.Do(func() {
		users, err := authsvc.NewUserService()
		if err != nil {
			logger.GetAppLogger().WithError(err).Error("Failed to create user service for auth middleware")
			return
		}
		cfg := global.ServerConfig
		authManager = &AuthManager{
			tokens: authsvc.NewTokenManager(cfg.JwtSecret, time.Duration(cfg.JwtExpiryHours)*time.Hour),
			users:  users,
		}
	})
	return authManager
}

// TokenManager exposes the shared token manager so handlers can issue tokens.
func TokenManager() *authsvc.TokenManager {
	return GetAuthManager().tokens
}

// AuthMiddleware validates the bearer token, loads the user and stores it in
// the request context under "user" and "user_id". Inactive accounts are
// rejected even with a valid token.
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		mgr := GetAuthManager()
		if mgr == nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, nil))
		}

		tokenString, err := authsvc.ExtractToken(c.Get("Authorization"))
		if err != nil {
			return basehdl.Fail(c, err)
		}

		claims, err := mgr.tokens.ValidateToken(tokenString)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			return basehdl.Fail(c, common.ErrTokenInvalid)
		}

		user, err := mgr.users.FindOneById(c.Context(), userID)
		if err != nil {
			return basehdl.Fail(c, common.ErrTokenInvalid)
		}
		if user.Status != models.StatusActive {
			return basehdl.Fail(c, common.ErrUserInactive)
		}

		c.Locals("user_id", user.ID.Hex())
		c.Locals("user", user)

		return c.Next()
	}
}

// RequireRole allows the request through only when the authenticated user has
// one of the given roles. Must run after AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		user, ok := UserFromContext(c)
		if !ok {
			return basehdl.Fail(c, common.ErrTokenMissing)
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return basehdl.Fail(c, common.ErrForbidden)
	}
}

// UserFromContext returns the authenticated user attached by AuthMiddleware.
func UserFromContext(c fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals("user").(models.User)
	return user, ok
}
