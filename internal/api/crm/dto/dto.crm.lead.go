package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "nova_crm/internal/api/auth/dto"
)

// LeadCreateInput is the payload for creating a lead.
type LeadCreateInput struct {
	Title       string  `json:"title" validate:"required"`
	Customer    string  `json:"customer" validate:"required"`
	Value       float64 `json:"value,omitempty"`
	Status      string  `json:"status,omitempty"`
	Source      string  `json:"source,omitempty"`
	Description string  `json:"description,omitempty"`
	AssignedTo  string  `json:"assignedTo,omitempty"`
}

// LeadUpdateInput carries the fields a client may change on a lead.
type LeadUpdateInput struct {
	Title       *string  `json:"title,omitempty"`
	Customer    *string  `json:"customer,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Source      *string  `json:"source,omitempty"`
	Description *string  `json:"description,omitempty"`
	AssignedTo  *string  `json:"assignedTo,omitempty"`
}

// LeadResponse is a lead with its customer and user references expanded.
type LeadResponse struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Customer    *CustomerRef       `json:"customer,omitempty"`
	Value       float64            `json:"value"`
	Status      string             `json:"status"`
	Source      string             `json:"source,omitempty"`
	Description string             `json:"description,omitempty"`
	AssignedTo  *authdto.UserRef   `json:"assignedTo,omitempty"`
	CreatedBy   *authdto.UserRef   `json:"createdBy,omitempty"`
	ConvertedAt *int64             `json:"convertedAt,omitempty"`
	CreatedAt   int64              `json:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt"`
}

// LeadStatusStat is one bucket of the lead overview aggregation.
type LeadStatusStat struct {
	Status string  `json:"status" bson:"_id"`
	Count  int64   `json:"count" bson:"count"`
	Value  float64 `json:"value" bson:"value"`
}

// LeadStatsResponse summarizes the pipeline by status.
type LeadStatsResponse struct {
	TotalLeads int64            `json:"totalLeads"`
	TotalValue float64          `json:"totalValue"`
	ByStatus   []LeadStatusStat `json:"byStatus"`
}
