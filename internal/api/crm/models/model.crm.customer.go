// Package models - CRM entities: customers, leads and activities.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer status values
const (
	CustomerStatusActive   = "ACTIVE"
	CustomerStatusInactive = "INACTIVE"
	CustomerStatusChurned  = "CHURNED"
)

// Customer is a company contact in the CRM (crm_customers).
type Customer struct {
	ID         primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Name       string              `json:"name" bson:"name" index:"single"`
	Email      string              `json:"email" bson:"email"`
	Phone      string              `json:"phone,omitempty" bson:"phone,omitempty"`
	Company    string              `json:"company,omitempty" bson:"company,omitempty"`
	Status     string              `json:"status" bson:"status" index:"single"`
	Address    string              `json:"address,omitempty" bson:"address,omitempty"`
	Notes      string              `json:"notes,omitempty" bson:"notes,omitempty"`
	AssignedTo *primitive.ObjectID `json:"assignedTo,omitempty" bson:"assignedTo,omitempty" index:"single"`
	CreatedBy  primitive.ObjectID  `json:"createdBy" bson:"createdBy"`
	CreatedAt  int64               `json:"createdAt" bson:"createdAt" index:"single;order:-1"`
	UpdatedAt  int64               `json:"updatedAt" bson:"updatedAt"`
}

// ValidCustomerStatus reports whether status is a known customer status.
func ValidCustomerStatus(status string) bool {
	switch status {
	case CustomerStatusActive, CustomerStatusInactive, CustomerStatusChurned:
		return true
	}
	return false
}
