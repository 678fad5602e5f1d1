package model

import "testing"

func TestValidWearItem(t *testing.T) {
	tests := []struct {
		name     string
		item     WearItem
		expected bool
	}{
		{"empty", NewWearItem("", "", nil), false},
		{"empty photo counts as none", NewWearItem("", "", []byte{}), false},
		{"photo only", NewWearItem("", "", []byte{0xff, 0xd8}), true},
		{"name only", NewWearItem("Shirt", "", nil), true},
		{"materials only", NewWearItem("", "cotton", nil), true},
		{"all fields", NewWearItem("Shirt", "cotton", []byte("jpeg")), true},
	}

	for _, tt := range tests {
		got := ValidWearItem(tt.item)
		if got != tt.expected {
			t.Errorf("%s: ValidWearItem = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

func TestValidOutfit(t *testing.T) {
	shirt := NewWearItem("Shirt", "linen", nil)

	tests := []struct {
		name     string
		outfit   Outfit
		expected bool
	}{
		{"missing section", NewOutfit("", "x", "y", []WearItem{shirt}), false},
		{"missing category", NewOutfit("x", "", "z", []WearItem{shirt}), false},
		{"missing time of day", NewOutfit("x", "y", "", []WearItem{shirt}), false},
		{"no wear items", NewOutfit("x", "y", "z", nil), false},
		{"complete", NewOutfit("x", "y", "z", []WearItem{shirt}), true},
	}

	for _, tt := range tests {
		got := ValidOutfit(tt.outfit)
		if got != tt.expected {
			t.Errorf("%s: ValidOutfit = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

func TestMissingFieldsOrder(t *testing.T) {
	missing := NewOutfit("", "", "", nil).MissingFields()
	want := []string{FieldSectionName, FieldCategory, FieldTimeOfDay, FieldWearItems}
	if len(missing) != len(want) {
		t.Fatalf("expected %d missing fields, got %v", len(want), missing)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Errorf("missing[%d] = %q, want %q", i, missing[i], want[i])
		}
	}
}

func TestNewOutfitCopiesInput(t *testing.T) {
	photo := []byte("photo")
	wears := []WearItem{{Name: "Coat", Photo: photo}}

	o := NewOutfit("Work", "Formal", "Morning", wears)
	wears[0].Name = "Changed"
	photo[0] = 'X'

	if o.WearItems[0].Name != "Coat" {
		t.Errorf("expected wear name 'Coat', got %q", o.WearItems[0].Name)
	}
	if string(o.WearItems[0].Photo) != "photo" {
		t.Errorf("expected photo to be copied, got %q", o.WearItems[0].Photo)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	o := NewOutfit("Work", "Formal", "Morning", []WearItem{NewWearItem("Coat", "wool", []byte("p"))})
	c := o.Clone()
	c.WearItems[0].Photo[0] = 'q'

	if string(o.WearItems[0].Photo) != "p" {
		t.Errorf("clone shares photo bytes with original")
	}
}
