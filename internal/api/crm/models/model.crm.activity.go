package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity types
const (
	ActivityTypeCall    = "CALL"
	ActivityTypeEmail   = "EMAIL"
	ActivityTypeMeeting = "MEETING"
	ActivityTypeNote    = "NOTE"
	ActivityTypeTask    = "TASK"
)

// Activity is a logged interaction, optionally linked to a customer or
// a lead (crm_activities). Duration is in minutes.
type Activity struct {
	ID          primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Type        string              `json:"type" bson:"type" index:"single"`
	Subject     string              `json:"subject" bson:"subject"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	Duration    *int64              `json:"duration,omitempty" bson:"duration,omitempty"`
	Customer    *primitive.ObjectID `json:"customer,omitempty" bson:"customer,omitempty" index:"single"`
	Lead        *primitive.ObjectID `json:"lead,omitempty" bson:"lead,omitempty" index:"single"`
	CreatedBy   primitive.ObjectID  `json:"createdBy" bson:"createdBy"`
	CreatedAt   int64               `json:"createdAt" bson:"createdAt" index:"single;order:-1"`
	UpdatedAt   int64               `json:"updatedAt" bson:"updatedAt"`
}

// ValidActivityType reports whether t is a known activity type.
func ValidActivityType(t string) bool {
	switch t {
	case ActivityTypeCall, ActivityTypeEmail, ActivityTypeMeeting, ActivityTypeNote, ActivityTypeTask:
		return true
	}
	return false
}
