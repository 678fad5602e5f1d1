package nav

import "fmt"

// Screen identifies one of the catalogue screens.
type Screen int

const (
	ScreenBrowse Screen = iota
	ScreenForm
	ScreenDetail
	ScreenSubDetail
)

var screenNames = [...]string{"browse", "form", "detail", "sub_detail"}

func (s Screen) String() string {
	if s < 0 || int(s) >= len(screenNames) {
		return fmt.Sprintf("screen(%d)", int(s))
	}
	return screenNames[s]
}

// Mode tells whether the form creates a new outfit or edits one in place.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// State is the coordinator's position. Slot is the target outfit slot for
// edit, detail and sub-detail, and -1 otherwise. Wear is the wear item shown
// in sub-detail, and -1 otherwise.
type State struct {
	Screen Screen
	Mode   Mode
	Slot   int
	Wear   int
}

// Browse is the outfit list.
func Browse() State {
	return State{Screen: ScreenBrowse, Slot: -1, Wear: -1}
}

// Create is the empty form for a new outfit.
func Create() State {
	return State{Screen: ScreenForm, Mode: ModeCreate, Slot: -1, Wear: -1}
}

// Edit is the form pre-populated from slot i.
func Edit(i int) State {
	return State{Screen: ScreenForm, Mode: ModeEdit, Slot: i, Wear: -1}
}

// Detail shows the outfit in slot i.
func Detail(i int) State {
	return State{Screen: ScreenDetail, Slot: i, Wear: -1}
}

// SubDetail shows wear item j of the outfit in slot i.
func SubDetail(i, j int) State {
	return State{Screen: ScreenSubDetail, Slot: i, Wear: j}
}

func (s State) String() string {
	switch s.Screen {
	case ScreenForm:
		if s.Mode == ModeEdit {
			return fmt.Sprintf("form(edit %d)", s.Slot)
		}
		return "form(create)"
	case ScreenDetail:
		return fmt.Sprintf("detail(%d)", s.Slot)
	case ScreenSubDetail:
		return fmt.Sprintf("sub_detail(%d,%d)", s.Slot, s.Wear)
	default:
		return s.Screen.String()
	}
}
