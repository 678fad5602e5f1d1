package nav

import (
	"context"

	"github.com/erazemk/omara/internal/model"
)

// UI is the rendering collaborator. The coordinator only looks at whether a
// call failed, logs failures, and carries on.
type UI interface {
	RenderOutfitSummary(slot int, o model.Outfit) error
	ClearOutfitSummary(slot int) error
	RenderWearItem(slot int, w model.WearItem) error
	ClearWearItem(slot int) error
	ShowScreen(s Screen) error
	HideScreen(s Screen) error
	FormIsValidChanged(valid bool) error
}

// Animator plays the visual transition between two screens. Play must
// return promptly once ctx is canceled and must not call the coordinator.
type Animator interface {
	Play(ctx context.Context, from, to Screen) error
}

type nopUI struct{}

func (nopUI) RenderOutfitSummary(int, model.Outfit) error { return nil }
func (nopUI) ClearOutfitSummary(int) error                { return nil }
func (nopUI) RenderWearItem(int, model.WearItem) error    { return nil }
func (nopUI) ClearWearItem(int) error                     { return nil }
func (nopUI) ShowScreen(Screen) error                     { return nil }
func (nopUI) HideScreen(Screen) error                     { return nil }
func (nopUI) FormIsValidChanged(bool) error               { return nil }
