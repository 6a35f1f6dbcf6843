package cmap

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
)

// Format6 is cmap subtable format 6: a dense trimmed mapping over a
// contiguous 16-bit code range.
type Format6 struct {
	d          *data.FontData
	firstCode  uint16
	entryCount uint16
	arrayBase  int
}

func decodeFormat6(d *data.FontData) (*Format6, error) {
	firstCode, err := d.UShort(6)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
	}
	entryCount, err := d.UShort(8)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
	}
	return &Format6{d: d, firstCode: firstCode, entryCount: entryCount, arrayBase: 10}, nil
}

// GlyphIndex implements GlyphLookup.
func (f *Format6) GlyphIndex(c uint32) uint16 {
	if c < uint32(f.firstCode) || c >= uint32(f.firstCode)+uint32(f.entryCount) {
		return 0
	}
	v, err := f.d.UShort(f.arrayBase + int(c-uint32(f.firstCode))*2)
	if err != nil {
		return 0
	}
	return v
}

// Ranges implements CharacterIterator.
func (f *Format6) Ranges() []Range {
	if f.entryCount == 0 {
		return nil
	}
	return []Range{{Start: uint32(f.firstCode), End: uint32(f.firstCode) + uint32(f.entryCount) - 1}}
}
