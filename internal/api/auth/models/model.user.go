// Package models - user account model for the auth domain.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role values
const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
)

// Status values
const (
	StatusActive    = "ACTIVE"
	StatusInactive  = "INACTIVE"
	StatusSuspended = "SUSPENDED"
)

// User is an account in the system. Password hash and OTP fields never
// serialize to JSON.
type User struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FirstName    string             `json:"firstName" bson:"firstName"`
	LastName     string             `json:"lastName" bson:"lastName"`
	Email        string             `json:"email" bson:"email" index:"unique"`
	PasswordHash string             `json:"-" bson:"passwordHash,omitempty"`
	Role         string             `json:"role" bson:"role" index:"single"`
	Status       string             `json:"status" bson:"status"`
	Avatar       string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	DarkMode     bool               `json:"darkMode" bson:"darkMode"`
	IsOnline     bool               `json:"isOnline" bson:"isOnline"`
	LastSeen     int64              `json:"lastSeen,omitempty" bson:"lastSeen,omitempty"`
	IsVerified   bool               `json:"isVerified" bson:"isVerified"`
	OTPCode      string             `json:"-" bson:"otpCode,omitempty"`
	OTPExpiresAt int64              `json:"-" bson:"otpExpiresAt,omitempty"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// ValidStatus reports whether status is a known account status.
func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}
