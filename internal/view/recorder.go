// Package view keeps a serializable picture of what the catalogue shows.
//
// Recorder is the nav.UI used by the HTTP front-end: instead of drawing, it
// records summaries, wear rows, the visible screen and form validity, and
// hands out copies as a Snapshot.
package view

import (
	"fmt"
	"sync"

	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/nav"
)

// Summary is an outfit as shown in the browse list.
type Summary struct {
	Slot        int    `json:"slot"`
	SectionName string `json:"section_name"`
	Category    string `json:"category"`
	TimeOfDay   string `json:"time_of_day"`
	WearCount   int    `json:"wear_count"`
}

// Wear is a wear item as shown in detail or in the form.
type Wear struct {
	Slot      int    `json:"slot"`
	Name      string `json:"name"`
	Materials string `json:"materials"`
	HasPhoto  bool   `json:"has_photo"`
}

// Snapshot is a point-in-time copy of the recorded view. Summaries has one
// entry per outfit slot and Wears one per wear row; inactive entries are nil.
type Snapshot struct {
	Screen     string      `json:"screen"`
	Empty      bool        `json:"empty"`
	FormValid  bool        `json:"form_valid"`
	Summaries  []*Summary  `json:"summaries"`
	Wears      []*Wear     `json:"wears"`
	Transition *Transition `json:"transition,omitempty"`
}

// Recorder implements nav.UI. It is safe for concurrent use.
type Recorder struct {
	mu         sync.Mutex
	screen     string
	formValid  bool
	summaries  []*Summary
	wears      []*Wear
	transition *Transition
}

// NewRecorder creates a recorder for n outfit slots and k wear rows.
func NewRecorder(n, k int) *Recorder {
	return &Recorder{
		summaries: make([]*Summary, n),
		wears:     make([]*Wear, k),
	}
}

func (r *Recorder) RenderOutfitSummary(slot int, o model.Outfit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkIndex("outfit summary", slot, len(r.summaries)); err != nil {
		return err
	}
	r.summaries[slot] = &Summary{
		Slot:        slot,
		SectionName: o.SectionName,
		Category:    o.Category,
		TimeOfDay:   o.TimeOfDay,
		WearCount:   len(o.WearItems),
	}
	return nil
}

func (r *Recorder) ClearOutfitSummary(slot int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkIndex("outfit summary", slot, len(r.summaries)); err != nil {
		return err
	}
	r.summaries[slot] = nil
	return nil
}

func (r *Recorder) RenderWearItem(slot int, w model.WearItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkIndex("wear item", slot, len(r.wears)); err != nil {
		return err
	}
	r.wears[slot] = &Wear{Slot: slot, Name: w.Name, Materials: w.Materials, HasPhoto: w.HasPhoto()}
	return nil
}

func (r *Recorder) ClearWearItem(slot int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkIndex("wear item", slot, len(r.wears)); err != nil {
		return err
	}
	r.wears[slot] = nil
	return nil
}

func (r *Recorder) ShowScreen(s nav.Screen) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screen = s.String()
	return nil
}

func (r *Recorder) HideScreen(s nav.Screen) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.screen == s.String() {
		r.screen = ""
	}
	return nil
}

func (r *Recorder) FormIsValidChanged(valid bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formValid = valid
	return nil
}

// Snapshot returns a copy of the recorded view.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		Screen:    r.screen,
		Empty:     true,
		FormValid: r.formValid,
		Summaries: make([]*Summary, len(r.summaries)),
		Wears:     make([]*Wear, len(r.wears)),
	}
	for i, s := range r.summaries {
		if s != nil {
			c := *s
			snap.Summaries[i] = &c
			snap.Empty = false
		}
	}
	for i, w := range r.wears {
		if w != nil {
			c := *w
			snap.Wears[i] = &c
		}
	}
	if r.transition != nil {
		t := *r.transition
		snap.Transition = &t
	}
	return snap
}

func (r *Recorder) beginTransition(t Transition) {
	r.mu.Lock()
	r.transition = &t
	r.mu.Unlock()
}

func (r *Recorder) endTransition() {
	r.mu.Lock()
	r.transition = nil
	r.mu.Unlock()
}

func checkIndex(what string, i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%s %d out of range [0,%d)", what, i, n)
	}
	return nil
}
