package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQueryField(t *testing.T) {
	f := NewQueryField(nil)

	require.NotNil(t, f)
	assert.NotNil(t, f.styles)
	assert.Empty(t, f.Value())
	assert.True(t, f.Focused())
	assert.NotNil(t, f.Init())
}

func TestNewCategoryField(t *testing.T) {
	f := NewCategoryField(nil)

	assert.False(t, f.Focused())
	assert.Contains(t, f.View(), "Category:")
}

func TestField_Update(t *testing.T) {
	f := NewQueryField(nil)

	updated, _ := f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("bail")})

	assert.Same(t, f, updated)
	assert.Equal(t, "bail", f.Value())
}

func TestField_FocusBlurReset(t *testing.T) {
	f := NewCategoryField(nil)

	f.Focus()
	assert.True(t, f.Focused())
	f.SetValue("civil suit")
	assert.Equal(t, "civil suit", f.Value())

	f.Blur()
	assert.False(t, f.Focused())
	f.Reset()
	assert.Empty(t, f.Value())
}

func TestField_SetWidth(t *testing.T) {
	f := NewQueryField(nil)

	f.SetWidth(100)
	assert.Equal(t, 100, f.Width())
	assert.Equal(t, 100-len(f.label)-6, f.textinput.Width)

	f.SetWidth(5)
	assert.Equal(t, 20, f.textinput.Width)
}
