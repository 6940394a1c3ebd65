package authsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	authdto "nova_crm/internal/api/auth/dto"
	"nova_crm/internal/api/auth/models"
)

func TestNewUnverifiedUser(t *testing.T) {
	user := newUnverifiedUser(&authdto.RegisterInput{
		FirstName: "  Jane ",
		LastName:  "Doe",
		Email:     "Jane@Example.com",
		Password:  "Sup3rSecret!",
	}, "hashed", "123456", 42)

	assert.Equal(t, models.StatusInactive, user.Status)
	assert.False(t, user.IsVerified)
	assert.Equal(t, models.RoleEmployee, user.Role)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "Jane", user.FirstName)
	assert.Equal(t, "123456", user.OTPCode)
	assert.Equal(t, int64(42), user.OTPExpiresAt)
}

func TestActivationUpdate(t *testing.T) {
	update := activationUpdate()

	assert.Equal(t, models.StatusActive, update.Set["status"])
	assert.Equal(t, true, update.Set["isVerified"])
	assert.Contains(t, update.Unset, "otpCode")
	assert.Contains(t, update.Unset, "otpExpiresAt")
}
