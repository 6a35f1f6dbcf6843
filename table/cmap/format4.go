package cmap

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
)

// Format4 is cmap subtable format 4: segmented 16-bit ranges, the common
// encoding for Windows Unicode BMP cmaps.
type Format4 struct {
	d                    *data.FontData
	segCount             int
	endCodeOffset        int
	startCodeOffset      int
	idDeltaOffset        int
	idRangeOffsetOffset  int
}

func decodeFormat4(d *data.FontData) (*Format4, error) {
	segCountX2, err := d.UShort(6)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
	}
	segCount := int(segCountX2 / 2)
	f := &Format4{
		d:                   d,
		segCount:            segCount,
		endCodeOffset:       14,
		startCodeOffset:     14 + segCount*2 + 2,
		idDeltaOffset:       14 + segCount*4 + 2,
		idRangeOffsetOffset: 14 + segCount*6 + 2,
	}
	if segCount == 0 {
		return f, nil
	}
	lastEnd, err := d.UShort(f.endCodeOffset + (segCount-1)*2)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
	}
	if lastEnd != 0xFFFF {
		return nil, &font.CorruptTableError{Tag: font.TagCmap, Reason: "format 4 last segment endCode != 0xFFFF"}
	}
	return f, nil
}

// GlyphIndex implements GlyphLookup using the segmented binary search
// described in the format's spec: find the segment with the smallest
// endCode >= c, then dispatch on whether idRangeOffset is zero.
func (f *Format4) GlyphIndex(c uint32) uint16 {
	if c > 0xFFFF || f.segCount == 0 {
		return 0
	}
	idx := f.d.SearchUShort(f.startCodeOffset, 2, f.endCodeOffset, 2, f.segCount, uint16(c))
	if idx < 0 {
		return 0
	}
	idRangeOffset, err := f.d.UShort(f.idRangeOffsetOffset + idx*2)
	if err != nil {
		return 0
	}
	idDelta, err := f.d.Short(f.idDeltaOffset + idx*2)
	if err != nil {
		return 0
	}
	if idRangeOffset == 0 {
		return uint16((c + uint32(uint16(idDelta))) % 65536)
	}
	startCode, err := f.d.UShort(f.startCodeOffset + idx*2)
	if err != nil {
		return 0
	}
	entryOffset := f.idRangeOffsetOffset + idx*2 + int(idRangeOffset) + 2*int(uint16(c)-startCode)
	gid, err := f.d.UShort(entryOffset)
	if err != nil || gid == 0 {
		return 0
	}
	return uint16((uint32(gid) + uint32(uint16(idDelta))) % 65536)
}

// Ranges implements CharacterIterator, reporting every segment's
// [startCode, endCode] interval verbatim (including the trailing
// 0xFFFF,0xFFFF sentinel segment).
func (f *Format4) Ranges() []Range {
	out := make([]Range, 0, f.segCount)
	for i := 0; i < f.segCount; i++ {
		start, err1 := f.d.UShort(f.startCodeOffset + i*2)
		end, err2 := f.d.UShort(f.endCodeOffset + i*2)
		if err1 != nil || err2 != nil {
			break
		}
		out = append(out, Range{Start: uint32(start), End: uint32(end)})
	}
	return out
}
