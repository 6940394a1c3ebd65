// Package notifhdl - HTTP handlers for the notification feed.
package notifhdl

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "nova_crm/internal/api/base/handler"
	notifsvc "nova_crm/internal/api/notification/service"
	"nova_crm/internal/common"
)

const defaultNotificationPageSize = 20

// NotificationHandler serves the notification routes.
type NotificationHandler struct {
	service *notifsvc.NotificationService
}

// NewNotificationHandler wires a NotificationHandler over its service.
func NewNotificationHandler(service *notifsvc.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func userIDFromContext(c fiber.Ctx) (primitive.ObjectID, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return userID, nil
}

// HandleList serves GET /notifications.
func (h *NotificationHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		userID, err := userIDFromContext(c)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		page, limit := basehdl.ParsePageLimit(c, defaultNotificationPageSize)

		result, err := h.service.ListForUser(c.Context(), userID, page, limit)
		if err != nil {
			return basehdl.Fail(c, err)
		}
		return basehdl.Success(c, result)
	})
}

// HandleMarkRead serves PATCH /notifications/:id/read.
func (h *NotificationHandler) HandleMarkRead(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		userID, err := userIDFromContext(c)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		id, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeValidationFormat, "Invalid id", common.StatusBadRequest, nil))
		}

		notification, err := h.service.MarkRead(c.Context(), id, userID)
		if err != nil {
			return basehdl.Fail(c, err)
		}
		return basehdl.Success(c, notification)
	})
}

// HandleMarkAllRead serves POST /notifications/read-all.
func (h *NotificationHandler) HandleMarkAllRead(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		userID, err := userIDFromContext(c)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		updated, err := h.service.MarkAllRead(c.Context(), userID)
		if err != nil {
			return basehdl.Fail(c, err)
		}
		return basehdl.Success(c, fiber.Map{"updated": updated})
	})
}
