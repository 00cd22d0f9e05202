package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBar_Defaults(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Zero(t, bar.ResultCount())
	assert.Nil(t, bar.Init())
}

func TestBar_View(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*Bar)
		contains []string
	}{
		{
			name:     "ready",
			setup:    func(*Bar) {},
			contains: []string{"Ready", "enter: retrieve"},
		},
		{
			name:     "retrieving",
			setup:    func(b *Bar) { b.SetState(StateRetrieving) },
			contains: []string{"Retrieving..."},
		},
		{
			name: "error with message",
			setup: func(b *Bar) {
				b.SetState(StateError)
				b.SetMessage("embedding unavailable")
			},
			contains: []string{"Error: embedding unavailable"},
		},
		{
			name: "results in category",
			setup: func(b *Bar) {
				b.SetState(StateResults)
				b.SetResultCount(4)
				b.SetCategory("writ petition")
			},
			contains: []string{"4 passages in writ petition", "n: new query", "enter: open"},
		},
		{
			name: "no results",
			setup: func(b *Bar) {
				b.SetState(StateResults)
			},
			contains: []string{"0 passages", "tab: category"},
		},
		{
			name: "ready with message",
			setup: func(b *Bar) {
				b.SetMessage("Seeded")
			},
			contains: []string{"Seeded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(160)
			tt.setup(bar)

			view := bar.View()
			for _, want := range tt.contains {
				assert.Contains(t, view, want)
			}
		})
	}
}
