package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPConfigEnabled(t *testing.T) {
	assert.False(t, SMTPConfig{}.Enabled())
	assert.False(t, SMTPConfig{Host: "smtp.example.com"}.Enabled())
	assert.False(t, SMTPConfig{To: "team@example.com"}.Enabled())
	assert.True(t, SMTPConfig{Host: "smtp.example.com", To: "team@example.com"}.Enabled())
}

func TestNewSMTPNotifierDefaults(t *testing.T) {
	n, err := NewSMTPNotifier(SMTPConfig{
		Host:     "smtp.example.com",
		Username: "bot@example.com",
		To:       "team@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 587, n.cfg.Port)
	assert.Equal(t, "bot@example.com", n.cfg.From)
	assert.NotZero(t, n.cfg.Timeout)
}

func TestNewSMTPNotifierRequiresSender(t *testing.T) {
	_, err := NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", To: "team@example.com"})
	assert.Error(t, err)

	_, err = NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com"})
	assert.Error(t, err)
}

func TestSMTPNotifierMessage(t *testing.T) {
	r := validResponse()

	n, err := NewSMTPNotifier(SMTPConfig{
		Host: "smtp.example.com",
		From: "survey@example.com",
		To:   "team@example.com",
	})
	require.NoError(t, err)
	msg, err := n.message(&r)
	require.NoError(t, err)
	assert.NotNil(t, msg)

	bad, err := NewSMTPNotifier(SMTPConfig{
		Host: "smtp.example.com",
		From: "not an address",
		To:   "team@example.com",
	})
	require.NoError(t, err)
	_, err = bad.message(&r)
	assert.Error(t, err)
}
