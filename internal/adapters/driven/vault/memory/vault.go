// Package memory provides an in-memory vault adapter for tests and
// dry runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/daybook-labs/daybook/internal/core/domain"
	"github.com/daybook-labs/daybook/internal/core/ports/driven"
)

// Ensure Vault implements the interface.
var _ driven.Vault = (*Vault)(nil)

// file is one stored file.
type file struct {
	contents string
	modTime  time.Time
}

// Vault stores files in memory. Safe for concurrent use.
type Vault struct {
	mu    sync.RWMutex
	files map[string]file
	now   func() time.Time
}

// New creates an empty in-memory vault.
func New() *Vault {
	return &Vault{
		files: make(map[string]file),
		now:   time.Now,
	}
}

// SetClock replaces the vault's time source, for deterministic tests.
func (v *Vault) SetClock(now func() time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.now = now
}

// List returns the files under folder whose names end with ext, sorted
// by path for deterministic ordering.
func (v *Vault) List(ctx context.Context, folder, ext string) ([]driven.FileInfo, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	prefix := strings.TrimSuffix(folder, "/") + "/"
	var files []driven.FileInfo
	for path, f := range v.files {
		if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, ext) {
			continue
		}
		files = append(files, driven.FileInfo{Path: path, ModTime: f.modTime})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Exists reports whether a file exists at path.
func (v *Vault) Exists(ctx context.Context, path string) (bool, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	_, ok := v.files[path]
	return ok, nil
}

// Read returns a file's contents.
func (v *Vault) Read(ctx context.Context, path string) (string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	f, ok := v.files[path]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	return f.contents, nil
}

// Write creates or overwrites a file.
func (v *Vault) Write(ctx context.Context, path, contents string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.files[path] = file{contents: contents, modTime: v.now()}
	return nil
}

// MkdirAll is a no-op: the in-memory vault has no real directories.
func (v *Vault) MkdirAll(ctx context.Context, folder string) error {
	return nil
}

// Delete removes a file.
func (v *Vault) Delete(ctx context.Context, path string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.files[path]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	delete(v.files, path)
	return nil
}
