package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-labs/daybook/internal/core/ports/driven"
)

func TestNewPromptStore_WithCustomDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewPromptStore(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
}

func TestNewPromptStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	store, err := NewPromptStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".daybook", "prompts"), store.Dir())
}

func TestPromptStore_Load_CreatesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	// Load triggers lazy init
	_, err = store.Load(driven.PromptJournal)
	require.NoError(t, err)

	for _, f := range []string{"journal.txt", "README.md"} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "expected file %s to exist", f)
	}
}

func TestPromptStore_Load_ReturnsDefaultContent(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptJournal)

	require.NoError(t, err)
	assert.Contains(t, prompt, "{content}")
	assert.Contains(t, prompt, "SENTIMENT")
}

func TestPromptStore_Load_ReturnsCustomContent(t *testing.T) {
	dir := t.TempDir()

	customContent := "My custom rewrite prompt: {content}"
	err := os.WriteFile(filepath.Join(dir, "journal.txt"), []byte(customContent), 0600)
	require.NoError(t, err)

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptJournal)

	require.NoError(t, err)
	assert.Equal(t, customContent, prompt)
}

func TestPromptStore_Load_FallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, _ = store.Load(driven.PromptJournal) // Trigger init
	os.Remove(filepath.Join(dir, "journal.txt"))
	store.Reload() // Clear cache

	prompt, err := store.Load(driven.PromptJournal)

	require.NoError(t, err)
	assert.Contains(t, prompt, "{content}")
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("nonexistent_prompt")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent_prompt")
}

func TestPromptStore_Load_CachesResults(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt1, err := store.Load(driven.PromptJournal)
	require.NoError(t, err)

	err = os.WriteFile(filepath.Join(dir, "journal.txt"), []byte("modified content"), 0600)
	require.NoError(t, err)

	// Second load returns the cached value.
	prompt2, err := store.Load(driven.PromptJournal)
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}

func TestPromptStore_Reload_ClearsCache(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptJournal)
	require.NoError(t, err)

	modifiedContent := "modified: {content}"
	err = os.WriteFile(filepath.Join(dir, "journal.txt"), []byte(modifiedContent), 0600)
	require.NoError(t, err)

	store.Reload()

	prompt, err := store.Load(driven.PromptJournal)
	require.NoError(t, err)

	assert.Equal(t, modifiedContent, prompt)
}

func TestPromptStore_Load_ConcurrentAccess(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)

	prompts := make(chan string, goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			prompt, err := store.Load(driven.PromptJournal)
			assert.NoError(t, err)
			prompts <- prompt
		}()
	}

	wg.Wait()
	close(prompts)

	var first string
	for prompt := range prompts {
		if first == "" {
			first = prompt
		} else {
			assert.Equal(t, first, prompt)
		}
	}
}

func TestPromptStore_DoesNotOverwriteExistingFiles(t *testing.T) {
	dir := t.TempDir()

	customContent := "pre-existing custom prompt {content}"
	err := os.WriteFile(filepath.Join(dir, "journal.txt"), []byte(customContent), 0600)
	require.NoError(t, err)

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, _ = store.Load(driven.PromptJournal) // Trigger init

	data, err := os.ReadFile(filepath.Join(dir, "journal.txt"))
	require.NoError(t, err)
	assert.Equal(t, customContent, string(data))
}

func TestPromptStore_TrimsWhitespace(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "journal.txt"), []byte("\n\n  prompt {content}  \n\n"), 0600)
	require.NoError(t, err)

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptJournal)
	require.NoError(t, err)

	assert.Equal(t, "prompt {content}", prompt)
}
