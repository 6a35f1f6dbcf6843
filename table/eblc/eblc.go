// Package eblc decodes the sfnt "EBLC" table: the embedded-bitmap
// location table, which maps a glyph id to an {offset, length} range
// inside the sibling "EBDT" table via one of five index-subtable
// formats. Like glyf, EBLC is a pure view table: it resolves offsets on
// demand and never decodes a bitmapSize's full subtable array eagerly.
package eblc

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
)

func init() {
	font.Register(font.TagEBLC, newBuilder)
}

// GlyphOutOfRangeError reports a glyph id outside every index subtable's
// declared [firstGlyphIndex, lastGlyphIndex] range for a given bitmap
// size.
type GlyphOutOfRangeError struct {
	GlyphID uint16
}

func (e *GlyphOutOfRangeError) Error() string {
	return "eblc: glyph id out of range for any index subtable"
}

// SbitLineMetrics mirrors the 12-byte hori/vert metrics record embedded
// in each bitmapSizeTable entry.
type SbitLineMetrics struct {
	Ascender               int8
	Descender              int8
	WidthMax               uint8
	CaretSlopeNumerator    int8
	CaretSlopeDenominator  int8
	CaretOffset            int8
	MinOriginSB            int8
	MinAdvanceSB           int8
	MaxBeforeBL            int8
	MinAfterBL             int8
	Pad1, Pad2             int8
}

// BitmapSize is one entry of EBLC's bitmapSizeTable: the header for one
// strike (a fixed pixels-per-em), giving the glyph range and byte extent
// of its index subtable array.
type BitmapSize struct {
	indexSubTableArrayOffset uint32
	indexTablesSize          uint32
	numberOfIndexSubTables   uint32
	ColorRef                 uint32
	Horizontal               SbitLineMetrics
	Vertical                 SbitLineMetrics
	StartGlyphIndex          uint16
	EndGlyphIndex            uint16
	PpemX                    uint8
	PpemY                    uint8
	BitDepth                 uint8
	Flags                    int8
}

// GlyphImage is the resolved byte range of one glyph's bitmap inside
// EBDT, plus the index-subtable's declared image format.
type GlyphImage struct {
	Offset      int64
	Length      int64
	ImageFormat uint16
}

// Builder is the table-level "EBLC" builder.
type Builder struct {
	font.BuilderBase
	header Header
	sizes  []BitmapSize
}

// Header is the directory-record metadata, aliased from font.Header so
// callers of this package don't need to import font directly for it.
type Header = font.Header

func newBuilder(tag font.Tag, header font.Header, d *data.FontData) (font.Builder, error) {
	b := &Builder{BuilderBase: font.NewBuilderBase(tag, d), header: header}
	if d != nil {
		if err := b.decodeHeader(d); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Builder) Header() font.Header       { return b.header }
func (b *Builder) Data() *data.FontData      { return b.Backing() }
func (b *Builder) SubReadyToSerialize() bool { return true }

func (b *Builder) SubDataSet(d *data.FontData) {
	b.BuilderBase.SubDataSet(d)
	b.sizes = nil
	if d != nil {
		_ = b.decodeHeader(d)
	}
}

func (b *Builder) SubDataSizeToSerialize() int { return b.PassthroughSize() }

func (b *Builder) SubSerialize(w *data.FontData) (int, error) { return b.PassthroughSerialize(w) }

func readSbitLineMetrics(d *data.FontData, off int) (SbitLineMetrics, error) {
	var m SbitLineMetrics
	vals := make([]int8, 12)
	for i := 0; i < 12; i++ {
		v, err := d.Byte(off + i)
		if err != nil {
			return m, err
		}
		vals[i] = v
	}
	m.Ascender, m.Descender = vals[0], vals[1]
	m.WidthMax = uint8(vals[2])
	m.CaretSlopeNumerator, m.CaretSlopeDenominator = vals[3], vals[4]
	m.CaretOffset = vals[5]
	m.MinOriginSB, m.MinAdvanceSB = vals[6], vals[7]
	m.MaxBeforeBL, m.MinAfterBL = vals[8], vals[9]
	m.Pad1, m.Pad2 = vals[10], vals[11]
	return m, nil
}

func (b *Builder) decodeHeader(d *data.FontData) error {
	numSizes, err := d.ULong(4)
	if err != nil {
		return &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
	}
	b.sizes = make([]BitmapSize, numSizes)
	for i := 0; i < int(numSizes); i++ {
		off := 8 + i*48
		var s BitmapSize
		if s.indexSubTableArrayOffset, err = d.ULong(off); err != nil {
			return &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		if s.indexTablesSize, err = d.ULong(off + 4); err != nil {
			return &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		if s.numberOfIndexSubTables, err = d.ULong(off + 8); err != nil {
			return &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		if s.ColorRef, err = d.ULong(off + 12); err != nil {
			return &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		if s.Horizontal, err = readSbitLineMetrics(d, off+16); err != nil {
			return &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		if s.Vertical, err = readSbitLineMetrics(d, off+28); err != nil {
			return &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		if s.StartGlyphIndex, err = d.UShort(off + 40); err != nil {
			return &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		if s.EndGlyphIndex, err = d.UShort(off + 42); err != nil {
			return &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		ppemX, err := d.UByte(off + 44)
		if err != nil {
			return &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		ppemY, err := d.UByte(off + 45)
		if err != nil {
			return &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		bitDepth, err := d.UByte(off + 46)
		if err != nil {
			return &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		flags, err := d.Byte(off + 47)
		if err != nil {
			return &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		s.PpemX, s.PpemY, s.BitDepth, s.Flags = ppemX, ppemY, bitDepth, flags
		b.sizes[i] = s
	}
	return nil
}

// Sizes returns the decoded bitmapSizeTable entries, one per available
// strike, in on-disk order.
func (b *Builder) Sizes() []BitmapSize {
	out := make([]BitmapSize, len(b.sizes))
	copy(out, b.sizes)
	return out
}

// Lookup resolves glyphID's bitmap location within the strike described
// by sizeIndex. It returns GlyphOutOfRangeError if no index subtable in
// that strike declares glyphID in its range, and reports a "missing"
// glyph (Offset == -1) for formats 4/5 that enumerate glyphs sparsely.
func (b *Builder) Lookup(sizeIndex int, glyphID uint16) (*GlyphImage, error) {
	if sizeIndex < 0 || sizeIndex >= len(b.sizes) {
		return nil, &font.CorruptTableError{Tag: font.TagEBLC, Reason: "eblc size index out of range"}
	}
	size := b.sizes[sizeIndex]
	d := b.Backing()
	if d == nil {
		return nil, &font.CorruptTableError{Tag: font.TagEBLC, Reason: "eblc table has no backing bytes"}
	}
	arrayBase := int(size.indexSubTableArrayOffset)
	for i := 0; i < int(size.numberOfIndexSubTables); i++ {
		entryOff := arrayBase + i*8
		first, err := d.UShort(entryOff)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		last, err := d.UShort(entryOff + 2)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		if glyphID < first || glyphID > last {
			continue
		}
		addlOffset, err := d.ULong(entryOff + 4)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		subHeaderOff := arrayBase + int(addlOffset)
		return decodeIndexSubtable(d, subHeaderOff, first, last, glyphID)
	}
	return nil, &GlyphOutOfRangeError{GlyphID: glyphID}
}

func decodeIndexSubtable(d *data.FontData, off int, first, last, glyphID uint16) (*GlyphImage, error) {
	indexFormat, err := d.UShort(off)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
	}
	imageFormat, err := d.UShort(off + 2)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
	}
	imageDataOffset, err := d.ULong(off + 4)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
	}
	body := off + 8
	g := int(glyphID) - int(first)

	switch indexFormat {
	case 1:
		s0, err := d.ULong(body + g*4)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		s1, err := d.ULong(body + (g+1)*4)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		return &GlyphImage{Offset: int64(imageDataOffset) + int64(s0), Length: int64(s1 - s0), ImageFormat: imageFormat}, nil
	case 2:
		imageSize, err := d.ULong(body)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		return &GlyphImage{
			Offset:      int64(imageDataOffset) + int64(g)*int64(imageSize),
			Length:      int64(imageSize),
			ImageFormat: imageFormat,
		}, nil
	case 3:
		s0, err := d.UShort(body + g*2)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		s1, err := d.UShort(body + (g+1)*2)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		return &GlyphImage{Offset: int64(imageDataOffset) + int64(s0), Length: int64(s1) - int64(s0), ImageFormat: imageFormat}, nil
	case 4:
		numGlyphs, err := d.ULong(body)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		pairsBase := body + 4
		idx := searchGlyphIDOffsetPairs(d, pairsBase, int(numGlyphs)+1, glyphID)
		if idx < 0 {
			return &GlyphImage{Offset: -1, Length: -1, ImageFormat: imageFormat}, nil
		}
		_, off0, err := readGlyphIDOffsetPair(d, pairsBase, idx)
		if err != nil {
			return nil, err
		}
		_, off1, err := readGlyphIDOffsetPair(d, pairsBase, idx+1)
		if err != nil {
			return nil, err
		}
		return &GlyphImage{Offset: int64(imageDataOffset) + int64(off0), Length: int64(off1) - int64(off0), ImageFormat: imageFormat}, nil
	case 5:
		imageSize, err := d.ULong(body)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		// imageSize (4 bytes) is followed by an 8-byte bigGlyphMetrics record.
		numGlyphs, err := d.ULong(body + 12)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
		}
		arrBase := body + 16
		idx, ok := searchGlyphIDArray(d, arrBase, int(numGlyphs), glyphID)
		if !ok {
			return &GlyphImage{Offset: -1, Length: -1, ImageFormat: imageFormat}, nil
		}
		return &GlyphImage{
			Offset:      int64(imageDataOffset) + int64(idx)*int64(imageSize),
			Length:      int64(imageSize),
			ImageFormat: imageFormat,
		}, nil
	default:
		return nil, &font.UnknownFormatError{Tag: font.TagEBLC, Format: indexFormat}
	}
}

func readGlyphIDOffsetPair(d *data.FontData, base int, i int) (glyphID uint16, offset uint16, err error) {
	glyphID, err = d.UShort(base + i*4)
	if err != nil {
		return 0, 0, &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
	}
	offset, err = d.UShort(base + i*4 + 2)
	if err != nil {
		return 0, 0, &font.OutOfBoundsError{Tag: font.TagEBLC, Err: err}
	}
	return glyphID, offset, nil
}

func searchGlyphIDOffsetPairs(d *data.FontData, base, count int, glyphID uint16) int {
	lo, hi := 0, count-2
	for lo <= hi {
		mid := (lo + hi) / 2
		g, _, err := readGlyphIDOffsetPair(d, base, mid)
		if err != nil {
			return -1
		}
		switch {
		case glyphID < g:
			hi = mid - 1
		case glyphID > g:
			lo = mid + 1
		default:
			return mid
		}
	}
	return -1
}

func searchGlyphIDArray(d *data.FontData, base, count int, glyphID uint16) (int, bool) {
	lo, hi := 0, count-1
	for lo <= hi {
		mid := (lo + hi) / 2
		g, err := d.UShort(base + mid*2)
		if err != nil {
			return 0, false
		}
		switch {
		case glyphID < g:
			hi = mid - 1
		case glyphID > g:
			lo = mid + 1
		default:
			return mid, true
		}
	}
	return 0, false
}
