// Package codec implements the binary encoding of a saved outfit list.
//
// Layout:
//
//	"OMR1" uvarint(count) record*
//	record = str(section) str(category) str(time_of_day) uvarint(wears) wear*
//	wear   = str(name) str(materials) byte(has_photo) [bytes(photo)]
//	str, bytes = uvarint(len) raw
//
// An empty input decodes to an empty list.
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/erazemk/omara/internal/model"
)

var magic = []byte("OMR1")

// ErrCorrupt is returned when the input is not a valid encoding.
var ErrCorrupt = errors.New("corrupt outfit encoding")

// Encode serializes outfits in the given order.
func Encode(outfits []model.Outfit) []byte {
	buf := append([]byte(nil), magic...)
	buf = binary.AppendUvarint(buf, uint64(len(outfits)))
	for _, o := range outfits {
		buf = appendString(buf, o.SectionName)
		buf = appendString(buf, o.Category)
		buf = appendString(buf, o.TimeOfDay)
		buf = binary.AppendUvarint(buf, uint64(len(o.WearItems)))
		for _, w := range o.WearItems {
			buf = appendString(buf, w.Name)
			buf = appendString(buf, w.Materials)
			if w.HasPhoto() {
				buf = append(buf, 1)
				buf = appendBytes(buf, w.Photo)
			} else {
				buf = append(buf, 0)
			}
		}
	}
	return buf
}

// Decode parses data produced by Encode.
func Decode(data []byte) ([]model.Outfit, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if !bytes.HasPrefix(data, magic) {
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}

	d := &decoder{buf: data[len(magic):]}
	count := d.count("records")
	var outfits []model.Outfit
	for i := 0; i < count && d.err == nil; i++ {
		section := d.string()
		category := d.string()
		timeOfDay := d.string()
		n := d.count("wear items")

		var wears []model.WearItem
		for j := 0; j < n && d.err == nil; j++ {
			name := d.string()
			materials := d.string()
			var photo []byte
			if d.flag() {
				photo = d.bytes()
			}
			wears = append(wears, model.NewWearItem(name, materials, photo))
		}
		outfits = append(outfits, model.Outfit{
			SectionName: section,
			Category:    category,
			TimeOfDay:   timeOfDay,
			WearItems:   wears,
		})
	}
	if d.err != nil {
		return nil, d.err
	}
	if len(d.buf) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(d.buf))
	}
	return outfits, nil
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func appendBytes(buf, b []byte) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(b)))
	return append(buf, b...)
}

// decoder reads from buf and latches the first error; later reads return
// zero values.
type decoder struct {
	buf []byte
	err error
}

func (d *decoder) fail(format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
	}
}

func (d *decoder) uvarint() uint64 {
	if d.err != nil {
		return 0
	}
	v, n := binary.Uvarint(d.buf)
	if n <= 0 {
		d.fail("bad length prefix")
		return 0
	}
	d.buf = d.buf[n:]
	return v
}

// count reads an element count. Every element takes at least one byte, so a
// count larger than the remaining input is corrupt.
func (d *decoder) count(what string) int {
	v := d.uvarint()
	if v > uint64(len(d.buf)) {
		d.fail("%s count %d exceeds input", what, v)
		return 0
	}
	return int(v)
}

func (d *decoder) bytes() []byte {
	n := d.uvarint()
	if d.err != nil {
		return nil
	}
	if n > uint64(len(d.buf)) {
		d.fail("field length %d exceeds input", n)
		return nil
	}
	out := d.buf[:n]
	d.buf = d.buf[n:]
	return out
}

func (d *decoder) string() string {
	return string(d.bytes())
}

func (d *decoder) flag() bool {
	if d.err != nil {
		return false
	}
	if len(d.buf) == 0 {
		d.fail("truncated photo flag")
		return false
	}
	b := d.buf[0]
	d.buf = d.buf[1:]
	switch b {
	case 0:
		return false
	case 1:
		return true
	default:
		d.fail("bad photo flag %d", b)
		return false
	}
}
