package model

// WearItem is a single garment or accessory inside an outfit.
// Photo is nil when no photo was attached.
type WearItem struct {
	Name      string `json:"name"`
	Materials string `json:"materials"`
	Photo     []byte `json:"-"`
}

// NewWearItem builds a wear item. It never fails: a half-filled form row is
// still representable, and ValidWearItem decides whether it has content.
// The photo is copied, and an empty photo is stored as no photo.
func NewWearItem(name, materials string, photo []byte) WearItem {
	return WearItem{
		Name:      name,
		Materials: materials,
		Photo:     clonePhoto(photo),
	}
}

// HasPhoto reports whether a photo is attached.
func (w WearItem) HasPhoto() bool {
	return len(w.Photo) > 0
}

// ValidWearItem reports whether the item has any content: a name,
// materials, or a photo.
func ValidWearItem(w WearItem) bool {
	return w.Name != "" || w.Materials != "" || w.HasPhoto()
}

func clonePhoto(photo []byte) []byte {
	if len(photo) == 0 {
		return nil
	}
	out := make([]byte, len(photo))
	copy(out, photo)
	return out
}
