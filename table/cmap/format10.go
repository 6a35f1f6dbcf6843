package cmap

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
)

// Format10 is cmap subtable format 10: a dense trimmed mapping over a
// contiguous 32-bit code range, the format 6 analogue for codes beyond
// the BMP.
type Format10 struct {
	d             *data.FontData
	startCharCode uint32
	numChars      uint32
	arrayBase     int
}

func decodeFormat10(d *data.FontData) (*Format10, error) {
	startCharCode, err := d.ULong(12)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
	}
	numChars, err := d.ULong(16)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
	}
	return &Format10{d: d, startCharCode: startCharCode, numChars: numChars, arrayBase: 20}, nil
}

// GlyphIndex implements GlyphLookup.
func (f *Format10) GlyphIndex(c uint32) uint16 {
	if c < f.startCharCode || c-f.startCharCode >= f.numChars {
		return 0
	}
	v, err := f.d.UShort(f.arrayBase + int(c-f.startCharCode)*2)
	if err != nil {
		return 0
	}
	return v
}

// Ranges implements CharacterIterator.
func (f *Format10) Ranges() []Range {
	if f.numChars == 0 {
		return nil
	}
	return []Range{{Start: f.startCharCode, End: f.startCharCode + f.numChars - 1}}
}
