package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"demo@mindtrack.io",
		"first.last+tag@sub.example.co",
		"UPPER@EXAMPLE.COM",
	}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"no-at-sign",
		"missing@tld",
		"@example.com",
		"spaces in@example.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("password1"))
	assert.True(t, ValidatePassword("1234abcd"))

	assert.False(t, ValidatePassword("short1"))
	assert.False(t, ValidatePassword("allletters"))
	assert.False(t, ValidatePassword("12345678"))
}
