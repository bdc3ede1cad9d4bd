package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWelcomeEmailTemplate_Personalized(t *testing.T) {
	subject, body := welcomeEmailTemplate("Jordan", "https://app.example.com/dashboard", "GolfImprover")

	assert.Equal(t, "Welcome to GolfImprover!", subject)
	assert.Contains(t, body, "Welcome, Jordan!")
	assert.Contains(t, body, "https://app.example.com/dashboard")
}

func TestWelcomeEmailTemplate_NoName(t *testing.T) {
	_, body := welcomeEmailTemplate("", "https://app.example.com/dashboard", "GolfImprover")

	assert.Contains(t, body, "Welcome!")
	assert.NotContains(t, body, "Welcome, ")
}

func TestSendWelcomeEmail_DevMode(t *testing.T) {
	svc := NewEmailService("", "hello@example.com", "https://app.example.com", "GolfImprover", true)

	require.NoError(t, svc.SendWelcomeEmail("golfer@example.com", "Jordan"))
}
