// Package dto - request/response shapes for the CRM domain.
package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "nova_crm/internal/api/auth/dto"
)

// CustomerCreateInput is the payload for creating a customer.
type CustomerCreateInput struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone,omitempty"`
	Company    string `json:"company,omitempty"`
	Status     string `json:"status,omitempty"`
	Address    string `json:"address,omitempty"`
	Notes      string `json:"notes,omitempty"`
	AssignedTo string `json:"assignedTo,omitempty"`
}

// CustomerUpdateInput carries the fields a client may change on a
// customer. Nil pointers are left untouched.
type CustomerUpdateInput struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty"`
	Company    *string `json:"company,omitempty"`
	Status     *string `json:"status,omitempty"`
	Address    *string `json:"address,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	AssignedTo *string `json:"assignedTo,omitempty"`
}

// CustomerRef is the compact customer shape embedded in lead and
// activity responses.
type CustomerRef struct {
	ID      primitive.ObjectID `json:"id" bson:"_id"`
	Name    string             `json:"name" bson:"name"`
	Company string             `json:"company,omitempty" bson:"company,omitempty"`
}

// CustomerResponse is a customer with its user references expanded.
type CustomerResponse struct {
	ID         primitive.ObjectID `json:"id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone,omitempty"`
	Company    string             `json:"company,omitempty"`
	Status     string             `json:"status"`
	Address    string             `json:"address,omitempty"`
	Notes      string             `json:"notes,omitempty"`
	AssignedTo *authdto.UserRef   `json:"assignedTo,omitempty"`
	CreatedBy  *authdto.UserRef   `json:"createdBy,omitempty"`
	CreatedAt  int64              `json:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt"`
}
