package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrExtractionFailed", ErrExtractionFailed},
		{"ErrInvalidChunkConfig", ErrInvalidChunkConfig},
		{"ErrEmbeddingFailed", ErrEmbeddingFailed},
		{"ErrStoreUnavailable", ErrStoreUnavailable},
		{"ErrInvalidPartition", ErrInvalidPartition},
		{"ErrGenerationFailed", ErrGenerationFailed},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrEmbeddingUnavailable", ErrEmbeddingUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrUnsupportedType, ErrExtractionFailed,
		ErrInvalidChunkConfig, ErrEmbeddingFailed, ErrStoreUnavailable,
		ErrInvalidPartition, ErrGenerationFailed, ErrLLMUnavailable, ErrEmbeddingUnavailable,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

// TestErrors_Wrapping tests that wrapped errors keep their kind
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("extract brief.pdf: %w", ErrExtractionFailed)

	assert.True(t, errors.Is(wrapped, ErrExtractionFailed))
	assert.False(t, errors.Is(wrapped, ErrGenerationFailed))
	assert.Contains(t, wrapped.Error(), "brief.pdf")
}
