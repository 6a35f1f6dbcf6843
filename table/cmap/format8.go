package cmap

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
)

// Format8 is cmap subtable format 8: a mixed 16/32-bit encoding, built
// from the same {start, end, startGlyphID} groups as formats 12 and 13.
// It has no known producer in modern font tooling; this decoder follows
// the spec's group layout but is untested against a real-world font. The
// 8192-byte is32 bitmap is skipped, not read: lookup uses the groups alone.
type Format8 struct {
	d          *data.FontData
	groupsBase int
	numGroups  int
}

func decodeFormat8(d *data.FontData) (*Format8, error) {
	numGroups, err := d.ULong(8204)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
	}
	return &Format8{d: d, groupsBase: 8208, numGroups: int(numGroups)}, nil
}

// GlyphIndex implements GlyphLookup.
func (f *Format8) GlyphIndex(c uint32) uint16 {
	idx := f.d.SearchULong(f.groupsBase, 12, f.groupsBase+4, 12, f.numGroups, c)
	if idx < 0 {
		return 0
	}
	start, err1 := f.d.ULong(f.groupsBase + idx*12)
	startGlyph, err2 := f.d.ULong(f.groupsBase + idx*12 + 8)
	if err1 != nil || err2 != nil {
		return 0
	}
	return uint16(startGlyph + (c - start))
}

// Ranges implements CharacterIterator.
func (f *Format8) Ranges() []Range {
	out := make([]Range, 0, f.numGroups)
	for i := 0; i < f.numGroups; i++ {
		start, err1 := f.d.ULong(f.groupsBase + i*12)
		end, err2 := f.d.ULong(f.groupsBase + i*12 + 4)
		if err1 != nil || err2 != nil {
			break
		}
		out = append(out, Range{Start: start, End: end})
	}
	return sortedRanges(out)
}
