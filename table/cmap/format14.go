package cmap

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
)

// varSelectorRecord is one entry of format 14's directory: the variation
// selector plus offsets to its default and non-default UVS tables (either
// may be zero, meaning absent).
type varSelectorRecord struct {
	varSelector        uint32
	defaultUVSOffset   uint32
	nonDefaultUVSOffset uint32
}

// Format14 is cmap subtable format 14: Unicode variation sequence
// support. Unlike the other formats it does not map a bare character code
// to a glyph; GlyphIndex always returns 0 (.notdef). Use VariationGlyph
// for the real {baseChar, varSelector} -> glyph lookup.
type Format14 struct {
	d       *data.FontData
	records []varSelectorRecord
}

func decodeFormat14(d *data.FontData) (*Format14, error) {
	numRecords, err := d.ULong(6)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
	}
	f := &Format14{d: d, records: make([]varSelectorRecord, numRecords)}
	base := 10
	for i := 0; i < int(numRecords); i++ {
		off := base + i*11
		vs, err := d.UInt24(off)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
		}
		def, err := d.ULong(off + 3)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
		}
		nondef, err := d.ULong(off + 7)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
		}
		f.records[i] = varSelectorRecord{varSelector: vs, defaultUVSOffset: def, nonDefaultUVSOffset: nondef}
	}
	return f, nil
}

// GlyphIndex implements GlyphLookup; format 14 has no bare-codepoint
// mapping, so this always reports .notdef.
func (f *Format14) GlyphIndex(c uint32) uint16 { return 0 }

// VariationGlyph resolves a (baseChar, varSelector) pair. usesDefault
// reports that baseChar falls in the selector's defaultUVS ranges, i.e.
// the caller should use the glyph produced by baseChar alone rather than
// a variant glyph; found reports whether the pair was resolved at all
// (found==false and usesDefault==false means no variation sequence for
// this selector covers baseChar).
func (f *Format14) VariationGlyph(varSelector, baseChar uint32) (glyphID uint16, usesDefault bool, found bool) {
	for _, r := range f.records {
		if r.varSelector != varSelector {
			continue
		}
		if r.nonDefaultUVSOffset != 0 {
			if gid, ok := f.lookupNonDefault(int(r.nonDefaultUVSOffset), baseChar); ok {
				return gid, false, true
			}
		}
		if r.defaultUVSOffset != 0 {
			if f.inDefaultRanges(int(r.defaultUVSOffset), baseChar) {
				return 0, true, true
			}
		}
		return 0, false, false
	}
	return 0, false, false
}

func (f *Format14) inDefaultRanges(offset int, baseChar uint32) bool {
	n, err := f.d.ULong(offset)
	if err != nil {
		return false
	}
	base := offset + 4
	for i := 0; i < int(n); i++ {
		off := base + i*4
		start, err1 := f.d.UInt24(off)
		additional, err2 := f.d.UByte(off + 3)
		if err1 != nil || err2 != nil {
			return false
		}
		if baseChar >= start && baseChar <= start+uint32(additional) {
			return true
		}
	}
	return false
}

func (f *Format14) lookupNonDefault(offset int, baseChar uint32) (uint16, bool) {
	n, err := f.d.ULong(offset)
	if err != nil {
		return 0, false
	}
	base := offset + 4
	lo, hi := 0, int(n)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		off := base + mid*5
		uv, err := f.d.UInt24(off)
		if err != nil {
			return 0, false
		}
		switch {
		case baseChar < uv:
			hi = mid - 1
		case baseChar > uv:
			lo = mid + 1
		default:
			gid, err := f.d.UShort(off + 3)
			if err != nil {
				return 0, false
			}
			return gid, true
		}
	}
	return 0, false
}
