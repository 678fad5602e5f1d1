package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/erazemk/omara/internal/codec"
	"github.com/erazemk/omara/internal/model"
)

// File is a Gateway that keeps the codec encoding in a single file.
type File struct {
	Path string
}

// NewFile returns a gateway writing to path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Save writes a temporary file next to the target and renames it into place.
func (f *File) Save(ctx context.Context, outfits []model.Outfit) error {
	if err := ctx.Err(); err != nil {
		return saveError(err)
	}
	if err := writeFileAtomic(f.Path, codec.Encode(outfits), 0o644); err != nil {
		return saveError(err)
	}
	return nil
}

// Load reads and decodes the file. A missing file means nothing was saved.
func (f *File) Load(ctx context.Context) ([]model.Outfit, error) {
	if err := ctx.Err(); err != nil {
		return nil, loadError(err)
	}
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, loadError(fmt.Errorf("reading %s: %w", f.Path, err))
	}
	outfits, err := codec.Decode(data)
	if err != nil {
		return nil, loadError(fmt.Errorf("decoding %s: %w", f.Path, err))
	}
	return outfits, nil
}

// writeFileAtomic writes data to a temp file, syncs it, renames it over path
// and syncs the directory. Readers see either the old or the new content.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	committed = true

	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("opening directory: %w", err)
	}
	defer d.Close()
	if err := d.Sync(); err != nil {
		return fmt.Errorf("syncing directory: %w", err)
	}
	return nil
}
