// Package auditdto - response shapes for the audit trail.
package auditdto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "nova_crm/internal/api/auth/dto"
)

// AuditLogResponse is an audit entry with its user reference expanded.
type AuditLogResponse struct {
	ID        primitive.ObjectID     `json:"id"`
	User      *authdto.UserRef       `json:"user,omitempty"`
	Action    string                 `json:"action"`
	Entity    string                 `json:"entity"`
	EntityID  string                 `json:"entityId,omitempty"`
	Changes   map[string]interface{} `json:"changes,omitempty"`
	IP        string                 `json:"ip,omitempty"`
	UserAgent string                 `json:"userAgent,omitempty"`
	CreatedAt int64                  `json:"createdAt"`
}
