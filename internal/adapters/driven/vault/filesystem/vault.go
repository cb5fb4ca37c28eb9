// Package filesystem provides a vault adapter backed by a directory on
// disk.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/daybook-labs/daybook/internal/core/domain"
	"github.com/daybook-labs/daybook/internal/core/ports/driven"
)

// Ensure Vault implements the interface.
var _ driven.Vault = (*Vault)(nil)

// Vault exposes a notes directory as flat file operations. All paths
// are vault-relative with forward slashes regardless of platform.
type Vault struct {
	root string
}

// New creates a vault rooted at dir.
func New(dir string) *Vault {
	return &Vault{root: filepath.Clean(dir)}
}

// Root returns the vault's root directory.
func (v *Vault) Root() string {
	return v.root
}

// resolve maps a vault-relative path to an absolute one, rejecting
// paths that escape the root.
func (v *Vault) resolve(path string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(path))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("%w: path escapes vault: %s", domain.ErrInvalidInput, path)
	}
	return filepath.Join(v.root, cleaned), nil
}

// List returns the files under folder (recursively) whose names end
// with ext, sorted by the walk order of the underlying filesystem.
func (v *Vault) List(ctx context.Context, folder, ext string) ([]driven.FileInfo, error) {
	dir, err := v.resolve(folder)
	if err != nil {
		return nil, err
	}

	var files []driven.FileInfo
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ext) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(v.root, path)
		if err != nil {
			return err
		}
		files = append(files, driven.FileInfo{
			Path:    filepath.ToSlash(rel),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: folder %s", domain.ErrNotFound, folder)
		}
		return nil, fmt.Errorf("listing %s: %w", folder, err)
	}

	return files, nil
}

// Exists reports whether a file exists at path.
func (v *Vault) Exists(ctx context.Context, path string) (bool, error) {
	abs, err := v.resolve(path)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(abs)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", path, err)
}

// Read returns a file's contents.
func (v *Vault) Read(ctx context.Context, path string) (string, error) {
	abs, err := v.resolve(path)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// Write creates or overwrites a file, creating parent directories as
// needed.
func (v *Vault) Write(ctx context.Context, path, contents string) error {
	abs, err := v.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}
	if err := os.WriteFile(abs, []byte(contents), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// MkdirAll creates a folder and any missing parents.
func (v *Vault) MkdirAll(ctx context.Context, folder string) error {
	abs, err := v.resolve(folder)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", folder, err)
	}
	return nil
}

// Delete removes a file.
func (v *Vault) Delete(ctx context.Context, path string) error {
	abs, err := v.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(abs); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return fmt.Errorf("deleting %s: %w", path, err)
	}
	return nil
}
