package nav

// Remote drives a Coordinator with slot, wear and row indexes that come
// from outside the process, such as HTTP paths. A reference to a missing
// outfit, wear item or form row returns ErrNotFound instead of being
// treated as a contract violation, so strict mode never panics on client
// input. The check and the event happen under one lock.
type Remote struct {
	c *Coordinator
}

// Remote returns a Remote view of c.
func (c *Coordinator) Remote() Remote {
	return Remote{c: c}
}

// Open shows the outfit in slot i.
func (r Remote) Open(i int) error {
	return r.c.open(i, true)
}

// OpenWear shows wear item j of the open outfit.
func (r Remote) OpenWear(j int) error {
	return r.c.openWear(j, true)
}

// SetWearText replaces the text fields of a form wear row.
func (r Remote) SetWearText(row int, name, materials string) error {
	return r.c.setWearText(row, name, materials, true)
}

// SetWearPhoto replaces the photo of a form wear row.
func (r Remote) SetWearPhoto(row int, photo []byte) error {
	return r.c.setWearPhoto(row, photo, true)
}

// RemoveWearRow frees a form wear row.
func (r Remote) RemoveWearRow(row int) error {
	return r.c.removeWearRow(row, true)
}
