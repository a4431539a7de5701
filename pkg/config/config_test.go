package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanAPIURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain host", "https://flows.example.org", "https://flows.example.org"},
		{"trailing slash", "https://flows.example.org/", "https://flows.example.org"},
		{"api suffix", "https://flows.example.org/api/v2", "https://flows.example.org"},
		{"api suffix with slash", "https://flows.example.org/api/v2/", "https://flows.example.org"},
		{"missing scheme", "flows.example.org", "https://flows.example.org"},
		{"whitespace", "  https://flows.example.org ", "https://flows.example.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanAPIURL(tt.input))
		})
	}
}

func TestCleanAPIToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"bare token", "abcdef1234567890", "abcdef1234567890"},
		{"token prefix", "Token abcdef1234567890", "abcdef1234567890"},
		{"lowercase prefix", "token abcdef1234567890", "abcdef1234567890"},
		{"whitespace", " abcdef1234567890 ", "abcdef1234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanAPIToken(tt.input))
		})
	}
}
