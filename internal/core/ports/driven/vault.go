package driven

import (
	"context"
	"time"
)

// FileInfo describes one file in the vault.
type FileInfo struct {
	// Path is the file's vault-relative path.
	Path string

	// ModTime is the file's last modification time.
	ModTime time.Time
}

// Vault is the note storage the host application provides: flat file
// operations scoped to a notes directory. The core never touches the
// filesystem directly.
type Vault interface {
	// List returns the files under folder (recursively) whose names end
	// with ext, e.g. ".md".
	List(ctx context.Context, folder, ext string) ([]FileInfo, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Read returns a file's contents.
	Read(ctx context.Context, path string) (string, error)

	// Write creates or overwrites a file with the given contents.
	Write(ctx context.Context, path, contents string) error

	// MkdirAll creates a folder and any missing parents. Idempotent.
	MkdirAll(ctx context.Context, folder string) error

	// Delete removes a file.
	Delete(ctx context.Context, path string) error
}
