package cmap

import "github.com/naturezhm/sfntly/data"

// subHeader2 is one entry of cmap format 2's subHeaders array, plus the
// absolute byte offset of its idRangeOffset field (idRangeOffset is a
// self-relative offset, mirroring format 4's segments).
type subHeader2 struct {
	firstCode       uint16
	entryCount      uint16
	idDelta         int16
	idRangeOffset   uint16
	idRangeOffsetAt int
}

// Format2 is cmap subtable format 2: high-byte mapping through subheaders,
// used by CJK double-byte encodings.
type Format2 struct {
	d              *data.FontData
	subHeaderKeys  [256]uint16
	subHeaders     []subHeader2
	glyphIndexBase int
}

func decodeFormat2(d *data.FontData) (*Format2, error) {
	f := &Format2{d: d}
	for i := 0; i < 256; i++ {
		v, err := d.UShort(6 + i*2)
		if err != nil {
			return nil, err
		}
		f.subHeaderKeys[i] = v
	}
	maxIdx := 0
	for _, k := range f.subHeaderKeys {
		if idx := int(k / 8); idx > maxIdx {
			maxIdx = idx
		}
	}
	base := 6 + 512
	f.subHeaders = make([]subHeader2, maxIdx+1)
	for i := 0; i <= maxIdx; i++ {
		off := base + i*8
		fc, err := d.UShort(off)
		if err != nil {
			return nil, err
		}
		ec, err := d.UShort(off + 2)
		if err != nil {
			return nil, err
		}
		delta, err := d.Short(off + 4)
		if err != nil {
			return nil, err
		}
		iro, err := d.UShort(off + 6)
		if err != nil {
			return nil, err
		}
		f.subHeaders[i] = subHeader2{
			firstCode: fc, entryCount: ec, idDelta: delta,
			idRangeOffset: iro, idRangeOffsetAt: off + 6,
		}
	}
	f.glyphIndexBase = base + len(f.subHeaders)*8
	return f, nil
}

// GlyphIndex implements GlyphLookup.
func (f *Format2) GlyphIndex(c uint32) uint16 {
	if c > 0xFFFF {
		return 0
	}
	high := byte(c >> 8)
	low := byte(c)
	shIdx := int(f.subHeaderKeys[high] / 8)
	if shIdx >= len(f.subHeaders) {
		return 0
	}
	sh := f.subHeaders[shIdx]
	if uint16(low) < sh.firstCode || uint16(low) >= sh.firstCode+sh.entryCount {
		return 0
	}
	entryOffset := sh.idRangeOffsetAt + int(sh.idRangeOffset) + 2*int(uint16(low)-sh.firstCode)
	gid, err := f.d.UShort(entryOffset)
	if err != nil || gid == 0 {
		return 0
	}
	return uint16((uint32(gid) + uint32(uint16(sh.idDelta))) % 65536)
}
