package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
)

func TestNewPromptStore_WithCustomDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewPromptStore(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
}

func TestNewPromptStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)

	store, err := NewPromptStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "prompts"), store.Dir())
}

func TestPromptStore_Load_CreatesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptPetition)
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.DraftType}}")

	assert.FileExists(t, filepath.Join(dir, "petition.tmpl"))
	assert.FileExists(t, filepath.Join(dir, "README.md"))
}

func TestPromptStore_Load_UserOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "petition.tmpl"), []byte("Draft {{.DraftType}}\n"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptPetition)
	require.NoError(t, err)
	assert.Equal(t, "Draft {{.DraftType}}", prompt)
}

func TestPromptStore_Load_EmptyFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "petition.tmpl"), []byte("  \n"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptPetition)
	require.NoError(t, err)
	def, _ := DefaultPrompt(driven.PromptPetition)
	assert.Equal(t, def, prompt)
}

func TestPromptStore_Load_Unknown(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("nope")
	assert.Error(t, err)
}

func TestPromptStore_Reload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptPetition)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "petition.tmpl"), []byte("edited"), 0600))

	cached, err := store.Load(driven.PromptPetition)
	require.NoError(t, err)
	assert.NotEqual(t, "edited", cached)

	store.Reload()
	fresh, err := store.Load(driven.PromptPetition)
	require.NoError(t, err)
	assert.Equal(t, "edited", fresh)
}

func TestPromptStore_ConcurrentLoad(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Load(driven.PromptPetition)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestDefaultPetitionTemplate_Parses(t *testing.T) {
	def, ok := DefaultPrompt(driven.PromptPetition)
	require.True(t, ok)

	funcs := template.FuncMap{
		"join": strings.Join,
		"inc":  func(i int) int { return i + 1 },
	}
	_, err := template.New("petition").Funcs(funcs).Parse(def)
	assert.NoError(t, err)
}
