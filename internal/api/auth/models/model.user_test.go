package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleManager))
	assert.True(t, ValidRole(RoleEmployee))
	assert.False(t, ValidRole("SUPERUSER"))
	assert.False(t, ValidRole(""))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusActive))
	assert.True(t, ValidStatus(StatusInactive))
	assert.True(t, ValidStatus(StatusSuspended))
	assert.False(t, ValidStatus("DELETED"))
	assert.False(t, ValidStatus(""))
}
