package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nova_crm/config"
)

func TestSendWithoutMailHostLogsInstead(t *testing.T) {
	m := New(&config.Configuration{})

	assert.False(t, m.Enabled())
	assert.NoError(t, m.Send("jane@example.com", "Hello", "<p>Hi</p>"))
}

func TestSendVerificationOTP(t *testing.T) {
	m := New(&config.Configuration{})

	assert.NoError(t, m.SendVerificationOTP("jane@example.com", "Jane", "123456"))
}
