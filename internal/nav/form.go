package nav

import (
	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/slot"
)

// Field is a text field of the outfit form.
type Field int

const (
	FieldSectionName Field = iota
	FieldCategory
	FieldTimeOfDay
)

func (f Field) String() string {
	switch f {
	case FieldSectionName:
		return model.FieldSectionName
	case FieldCategory:
		return model.FieldCategory
	case FieldTimeOfDay:
		return model.FieldTimeOfDay
	default:
		return "unknown"
	}
}

// FormRow is an active wear row of the form.
type FormRow struct {
	Row  int
	Item model.WearItem
}

// FormSnapshot is a copy of the form contents.
type FormSnapshot struct {
	SectionName string
	Category    string
	TimeOfDay   string
	Rows        []FormRow
	Missing     []string
}

// Valid reports whether the form can be submitted.
func (f FormSnapshot) Valid() bool {
	return len(f.Missing) == 0
}

// form is the create/edit form. Its wear rows are a pool of K slots, so
// "add wear" takes the first free row.
type form struct {
	sectionName string
	category    string
	timeOfDay   string
	rows        *slot.Pool[model.WearItem]
}

func newForm(wears int) *form {
	return &form{rows: slot.New[model.WearItem](wears)}
}

// holds reports whether row is in range and in use.
func (f *form) holds(row int) bool {
	if !f.rows.InRange(row) {
		return false
	}
	_, ok := f.rows.Get(row)
	return ok
}

func (f *form) reset() {
	f.sectionName, f.category, f.timeOfDay = "", "", ""
	f.rows.Clear()
}

// load pre-populates the form from o. Wear items beyond the row capacity are
// ignored; Restore already trims them.
func (f *form) load(o model.Outfit) {
	f.reset()
	f.sectionName, f.category, f.timeOfDay = o.SectionName, o.Category, o.TimeOfDay
	for _, w := range o.WearItems {
		row, ok := f.rows.Allocate()
		if !ok {
			return
		}
		f.rows.Occupy(row, model.NewWearItem(w.Name, w.Materials, w.Photo))
	}
}

func (f *form) set(field Field, value string) {
	switch field {
	case FieldSectionName:
		f.sectionName = value
	case FieldCategory:
		f.category = value
	case FieldTimeOfDay:
		f.timeOfDay = value
	}
}

// outfit builds the record the form would submit. Rows without content are
// skipped; the rest keep their row order.
func (f *form) outfit() model.Outfit {
	var wears []model.WearItem
	for _, w := range f.rows.Active() {
		if model.ValidWearItem(w) {
			wears = append(wears, w)
		}
	}
	return model.NewOutfit(f.sectionName, f.category, f.timeOfDay, wears)
}

// missing lists unmet requirements. A form with active rows but none with
// content reports wear_items as missing.
func (f *form) missing() []string {
	return f.outfit().MissingFields()
}

func (f *form) snapshot() FormSnapshot {
	snap := FormSnapshot{
		SectionName: f.sectionName,
		Category:    f.category,
		TimeOfDay:   f.timeOfDay,
		Missing:     f.missing(),
	}
	for row, w := range f.rows.Active() {
		snap.Rows = append(snap.Rows, FormRow{Row: row, Item: model.NewWearItem(w.Name, w.Materials, w.Photo)})
	}
	return snap
}
