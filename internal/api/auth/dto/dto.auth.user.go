package authdto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisterInput is the payload for account registration.
type RegisterInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,strong_password"`
}

// LoginInput is the payload for login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyEmailInput carries the OTP a user received by mail.
type VerifyEmailInput struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

// ProfileUpdateInput is the self-service profile update. Pointer fields form
// the allow-list: only non-nil values are written.
type ProfileUpdateInput struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
	DarkMode  *bool   `json:"darkMode,omitempty"`
}

// AdminUserUpdateInput is the admin-side user update allow-list.
type AdminUserUpdateInput struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Role      *string `json:"role,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// LoginResult bundles the issued token with the authenticated user.
type LoginResult struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// UserRef is the projection of a user embedded into expanded records.
type UserRef struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	FirstName string             `json:"firstName" bson:"firstName"`
	LastName  string             `json:"lastName" bson:"lastName"`
	Email     string             `json:"email" bson:"email"`
	Avatar    string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
}
