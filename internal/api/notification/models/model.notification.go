// Package models - Notification entities.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types
const (
	NotificationTypeLeadUpdated      = "LEAD_UPDATED"
	NotificationTypeLeadAssigned     = "LEAD_ASSIGNED"
	NotificationTypeCustomerAssigned = "CUSTOMER_ASSIGNED"
	NotificationTypeActivityAdded    = "ACTIVITY_ADDED"
	NotificationTypeMention          = "MENTION"
	NotificationTypeSystem           = "SYSTEM"
)

// Notification is an in-app message addressed to one user (notifications).
// Records are immutable once written except for the isRead flag.
type Notification struct {
	ID        primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	User      primitive.ObjectID     `json:"userId" bson:"userId" index:"single"`
	Type      string                 `json:"type" bson:"type"`
	Title     string                 `json:"title" bson:"title"`
	Message   string                 `json:"message" bson:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	IsRead    bool                   `json:"isRead" bson:"isRead" index:"single"`
	CreatedAt int64                  `json:"createdAt" bson:"createdAt" index:"single;order:-1"`
	UpdatedAt int64                  `json:"updatedAt" bson:"updatedAt"`
}

// ValidNotificationType reports whether t is a known notification type.
func ValidNotificationType(t string) bool {
	switch t {
	case NotificationTypeLeadUpdated, NotificationTypeLeadAssigned, NotificationTypeCustomerAssigned,
		NotificationTypeActivityAdded, NotificationTypeMention, NotificationTypeSystem:
		return true
	}
	return false
}
