package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/erazemk/omara/internal/model"
)

// Gateway persists the list of active outfits.
//
// Save replaces everything previously saved. A failed Save leaves the prior
// content intact. Load returns an empty list when nothing was ever saved.
type Gateway interface {
	Save(ctx context.Context, outfits []model.Outfit) error
	Load(ctx context.Context) ([]model.Outfit, error)
}

// ErrPersist matches every PersistError.
var ErrPersist = errors.New("persist failed")

// PersistError wraps an I/O or encoding failure on save or load.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s outfits: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() []error {
	return []error{ErrPersist, e.Err}
}

func saveError(err error) error {
	return &PersistError{Op: "saving", Err: err}
}

func loadError(err error) error {
	return &PersistError{Op: "loading", Err: err}
}
