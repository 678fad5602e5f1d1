package model

// Outfit is a catalogued outfit entry.
type Outfit struct {
	SectionName string     `json:"section_name"`
	Category    string     `json:"category"`
	TimeOfDay   string     `json:"time_of_day"`
	WearItems   []WearItem `json:"wear_items"`
}

// Outfit field names, as reported in validation errors.
const (
	FieldSectionName = "section_name"
	FieldCategory    = "category"
	FieldTimeOfDay   = "time_of_day"
	FieldWearItems   = "wear_items"
)

// NewOutfit builds an outfit, copying the wear items so the caller cannot
// change the record afterwards.
func NewOutfit(sectionName, category, timeOfDay string, wears []WearItem) Outfit {
	return Outfit{
		SectionName: sectionName,
		Category:    category,
		TimeOfDay:   timeOfDay,
		WearItems:   cloneWears(wears),
	}
}

// Clone returns a deep copy of the outfit.
func (o Outfit) Clone() Outfit {
	return NewOutfit(o.SectionName, o.Category, o.TimeOfDay, o.WearItems)
}

// MissingFields lists the requirements the outfit does not meet yet,
// in field order. An empty result means the outfit is valid.
func (o Outfit) MissingFields() []string {
	var missing []string
	if o.SectionName == "" {
		missing = append(missing, FieldSectionName)
	}
	if o.Category == "" {
		missing = append(missing, FieldCategory)
	}
	if o.TimeOfDay == "" {
		missing = append(missing, FieldTimeOfDay)
	}
	if len(o.WearItems) == 0 {
		missing = append(missing, FieldWearItems)
	}
	return missing
}

// ValidOutfit reports whether all three text fields are set and the outfit
// holds at least one wear item.
func ValidOutfit(o Outfit) bool {
	return len(o.MissingFields()) == 0
}

func cloneWears(wears []WearItem) []WearItem {
	if wears == nil {
		return nil
	}
	out := make([]WearItem, len(wears))
	for i, w := range wears {
		out[i] = NewWearItem(w.Name, w.Materials, w.Photo)
	}
	return out
}
