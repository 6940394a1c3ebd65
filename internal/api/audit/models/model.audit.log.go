// Package models - Audit trail entities.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit actions
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
	AuditActionLogin  = "LOGIN"
	AuditActionLogout = "LOGOUT"
)

// AuditLog is one recorded action in the audit trail (audit_logs).
// Changes holds per-field {from, to} pairs for updates.
type AuditLog struct {
	ID        primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	User      primitive.ObjectID     `json:"user" bson:"user" index:"single"`
	Action    string                 `json:"action" bson:"action" index:"single"`
	Entity    string                 `json:"entity" bson:"entity" index:"single"`
	EntityID  string                 `json:"entityId,omitempty" bson:"entityId,omitempty"`
	Changes   map[string]interface{} `json:"changes,omitempty" bson:"changes,omitempty"`
	IP        string                 `json:"ip,omitempty" bson:"ip,omitempty"`
	UserAgent string                 `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	CreatedAt int64                  `json:"createdAt" bson:"createdAt" index:"single;order:-1"`
	UpdatedAt int64                  `json:"updatedAt" bson:"updatedAt"`
}
