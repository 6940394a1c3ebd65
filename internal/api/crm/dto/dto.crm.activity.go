package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "nova_crm/internal/api/auth/dto"
)

// ActivityCreateInput is the payload for logging an activity.
// Duration is in minutes.
type ActivityCreateInput struct {
	Type        string `json:"type" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Description string `json:"description,omitempty"`
	Duration    *int64 `json:"duration,omitempty"`
	Customer    string `json:"customer,omitempty"`
	Lead        string `json:"lead,omitempty"`
}

// ActivityResponse is an activity with references expanded.
type ActivityResponse struct {
	ID          primitive.ObjectID `json:"id"`
	Type        string             `json:"type"`
	Subject     string             `json:"subject"`
	Description string             `json:"description,omitempty"`
	Duration    *int64             `json:"duration,omitempty"`
	Customer    *CustomerRef       `json:"customer,omitempty"`
	Lead        *LeadRef           `json:"lead,omitempty"`
	CreatedBy   *authdto.UserRef   `json:"createdBy,omitempty"`
	CreatedAt   int64              `json:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt"`
}

// LeadRef is the compact lead shape embedded in activity responses.
type LeadRef struct {
	ID    primitive.ObjectID `json:"id" bson:"_id"`
	Title string             `json:"title" bson:"title"`
}
