package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"broker@example.com", true},
		{"first.last+tag@sub.example.co", true},
		{"UPPER@EXAMPLE.COM", true},
		{"", false},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"@example.com", false},
		{"spaces in@example.com", false},
		{strings.Repeat("a", 250) + "@example.com", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidEmail(tt.email), "email %q", tt.email)
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("4f1c2b8a-9d3e-4a6f-8b2c-1e5d7a9c3f0b"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("4f1c2b8a9d3e4a6f8b2c1e5d7a9c3f0b"))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole("admin"))
	assert.True(t, IsValidRole("broker"))
	assert.False(t, IsValidRole("Admin"))
	assert.False(t, IsValidRole("manager"))
	assert.False(t, IsValidRole(""))
}
