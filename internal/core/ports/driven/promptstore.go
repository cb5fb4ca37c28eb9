package driven

// PromptJournal is the name of the note-rewrite prompt.
const PromptJournal = "journal"

// PromptStore provides access to user-customisable prompt templates.
// Implementations handle persistence and fallback to embedded defaults.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cache, forcing fresh loads from storage.
	Reload()

	// Dir returns the prompt directory path.
	Dir() string
}
