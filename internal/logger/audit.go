package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// LogAction writes an audit entry to the audit file log. This is the file
// trail next to the persisted audit collection.
func LogAction(action string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}

	fields := logrus.Fields{
		"action":     action,
		"ip":         c.IP(),
		"user_agent": c.Get("User-Agent"),
		"details":    details,
		"timestamp":  time.Now(),
	}

	if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
		fields["user_id"] = userID
	}
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		details["request_id"] = requestID
	}

	GetAuditLogger().WithFields(fields).Info("Audit log")
}

// LogCRUD logs a CRUD operation on an entity.
func LogCRUD(operation string, entity string, entityID string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["operation"] = operation
	details["entity"] = entity
	details["entity_id"] = entityID

	LogAction("crud_"+operation, c, details)
}

// LogAuth logs an authentication event (login, logout, register, verify).
func LogAuth(action string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["auth_action"] = action

	LogAction("auth_"+action, c, details)
}
