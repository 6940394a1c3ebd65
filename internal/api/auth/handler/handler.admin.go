// Package authhdl - admin user management handlers.
package authhdl

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	auditsvc "nova_crm/internal/api/audit/service"
	authdto "nova_crm/internal/api/auth/dto"
	authsvc "nova_crm/internal/api/auth/service"
	basehdl "nova_crm/internal/api/base/handler"
	"nova_crm/internal/api/middleware"
	"nova_crm/internal/common"
)

// AdminUserHandler serves the user administration routes.
type AdminUserHandler struct {
	users *authsvc.UserService
	audit *auditsvc.Recorder
}

// NewAdminUserHandler wires an AdminUserHandler over its dependencies.
func NewAdminUserHandler(users *authsvc.UserService, audit *auditsvc.Recorder) *AdminUserHandler {
	return &AdminUserHandler{users: users, audit: audit}
}

// HandleList serves GET /users.
func (h *AdminUserHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		users, err := h.users.ListUsers(c.Context())
		if err != nil {
			return basehdl.Fail(c, err)
		}
		return basehdl.Success(c, users)
	})
}

// HandleUpdate serves PATCH /users/:id. An admin may update anyone; other
// users may update themselves, with role and status changes stripped.
func (h *AdminUserHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor, ok := middleware.UserFromContext(c)
		if !ok {
			return basehdl.Fail(c, common.ErrTokenMissing)
		}

		id, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeValidationFormat, "Invalid id", common.StatusBadRequest, nil))
		}

		isAdmin := authsvc.Allowed(authsvc.EntityUser, authsvc.ActionUpdate, actor.Role, false)
		if !isAdmin && actor.ID != id {
			return basehdl.Fail(c, common.ErrForbidden)
		}

		var input authdto.AdminUserUpdateInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, nil))
		}
		if !isAdmin {
			input.Role = nil
			input.Status = nil
		}

		updated, err := h.users.AdminUpdate(c.Context(), id, &input)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		changes := map[string]interface{}{}
		if input.Role != nil {
			changes["role"] = map[string]interface{}{"to": *input.Role}
		}
		if input.Status != nil {
			changes["status"] = map[string]interface{}{"to": *input.Status}
		}
		if len(changes) == 0 {
			changes = nil
		}
		h.audit.Record(c.Context(), auditsvc.Entry{
			User:      actor.ID,
			Action:    "UPDATE",
			Entity:    authsvc.EntityUser,
			EntityID:  id.Hex(),
			Changes:   changes,
			IP:        c.IP(),
			UserAgent: c.Get("User-Agent"),
		})

		return basehdl.Success(c, updated)
	})
}
