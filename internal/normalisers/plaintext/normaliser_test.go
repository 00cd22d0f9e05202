package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensions(t *testing.T) {
	assert.ElementsMatch(t, []string{".txt", ".text"}, New().Extensions())
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		expected string
	}{
		{"ascii", []byte("IN THE HIGH COURT"), "IN THE HIGH COURT"},
		{"utf8", []byte("Café – ₹500"), "Café – ₹500"},
		{"bom stripped", []byte("\xEF\xBB\xBFhello"), "hello"},
		{"invalid bytes replaced", []byte("ok\xff\xfeend"), "ok�end"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().Extract(context.Background(), tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
