// Package crmhdl - HTTP handlers for the CRM domain.
package crmhdl

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	auditsvc "nova_crm/internal/api/audit/service"
	"nova_crm/internal/api/middleware"
	"nova_crm/internal/common"
)

// getUserIDFromContext reads the authenticated user id attached by the
// auth middleware.
func getUserIDFromContext(c fiber.Ctx) *primitive.ObjectID {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		return nil
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		return nil
	}
	return &userID
}

// parseIDParam reads and validates the :id route parameter.
func parseIDParam(c fiber.Ctx) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "Invalid id", common.StatusBadRequest, nil)
	}
	return id, nil
}

// roleFromContext returns the authenticated user's role, or "" when absent.
func roleFromContext(c fiber.Ctx) string {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return ""
	}
	return user.Role
}

// auditEntry builds an audit entry stamped with the request's client info.
func auditEntry(c fiber.Ctx, userID primitive.ObjectID, action, entity, entityID string, changes map[string]interface{}) auditsvc.Entry {
	return auditsvc.Entry{
		User:      userID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Changes:   changes,
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
	}
}
