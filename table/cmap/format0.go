package cmap

import "github.com/naturezhm/sfntly/data"

// Format0 is cmap subtable format 0: a direct 256-byte glyph index array,
// one byte per character code in [0, 256).
type Format0 struct {
	GlyphIdArray [256]byte
}

func decodeFormat0(d *data.FontData) (*Format0, error) {
	f := &Format0{}
	for i := 0; i < 256; i++ {
		v, err := d.UByte(6 + i)
		if err != nil {
			return nil, err
		}
		f.GlyphIdArray[i] = v
	}
	return f, nil
}

// GlyphIndex implements GlyphLookup.
func (f *Format0) GlyphIndex(c uint32) uint16 {
	if c >= 256 {
		return 0
	}
	return uint16(f.GlyphIdArray[c])
}

// Ranges implements CharacterIterator.
func (f *Format0) Ranges() []Range { return []Range{{Start: 0, End: 255}} }
