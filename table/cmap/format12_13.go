package cmap

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
)

// Format12Or13 is cmap subtable formats 12 and 13: groups of
// {startCharCode, endCharCode, startGlyphID}. The two formats share
// identical group layout and binary-search lookup; they differ only in
// how startGlyphID combines with the character code (see GlyphIndex).
type Format12Or13 struct {
	d          *data.FontData
	groupsBase int
	numGroups  int
	// sameGlyphForGroup selects format 13's semantics: every character in
	// a group maps to the same glyph. When false (format 12), the glyph
	// id advances with the character's offset into the group.
	sameGlyphForGroup bool
}

func decodeFormat12or13(d *data.FontData, sameGlyphForGroup bool) (*Format12Or13, error) {
	numGroups, err := d.ULong(12)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
	}
	return &Format12Or13{d: d, groupsBase: 16, numGroups: int(numGroups), sameGlyphForGroup: sameGlyphForGroup}, nil
}

// GlyphIndex implements GlyphLookup.
func (f *Format12Or13) GlyphIndex(c uint32) uint16 {
	idx := f.d.SearchULong(f.groupsBase, 12, f.groupsBase+4, 12, f.numGroups, c)
	if idx < 0 {
		return 0
	}
	startGlyph, err := f.d.ULong(f.groupsBase + idx*12 + 8)
	if err != nil {
		return 0
	}
	if f.sameGlyphForGroup {
		return uint16(startGlyph)
	}
	start, err := f.d.ULong(f.groupsBase + idx*12)
	if err != nil {
		return 0
	}
	return uint16(startGlyph + (c - start))
}

// Ranges implements CharacterIterator.
func (f *Format12Or13) Ranges() []Range {
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
