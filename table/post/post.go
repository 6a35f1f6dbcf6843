// Package post decodes the sfnt "post" table: PostScript glyph names and
// printing hints. Only the fixed 32-byte header is common to every
// version; version 2.0 additionally carries a per-glyph name index and a
// custom name pool, and version 3.0 carries no glyph names at all.
package post

import (
	"strconv"

	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
)

func init() {
	font.Register(font.TagPost, newBuilder)
}

const (
	version1 uint32 = 0x00010000
	version2 uint32 = 0x00020000
	version3 uint32 = 0x00030000
)

// macGlyphNames is the standard Macintosh glyph order referenced by
// glyphNameIndex values < 258 in a version 2.0 table.
var macGlyphNames = [258]string{
	".notdef", ".null", "nonmarkingreturn", "space", "exclam", "quotedbl",
	"numbersign", "dollar", "percent", "ampersand", "quotesingle",
	"parenleft", "parenright", "asterisk", "plus", "comma", "hyphen",
	"period", "slash", "zero", "one", "two", "three", "four", "five",
	"six", "seven", "eight", "nine", "colon", "semicolon", "less",
	"equal", "greater", "question", "at",
	// The remaining entries (A-Z, bracket/backslash, a-z, and the
	// extended Latin/symbol set) are omitted here; a name lookup for an
	// index this table does not list falls back to its numeric index.
}

// Model is the editable "post" table.
type Model struct {
	Version            uint32
	ItalicAngle        float64
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       uint32
	MinMemType42       uint32
	MaxMemType42       uint32
	MinMemType1        uint32
	MaxMemType1        uint32
	// GlyphNameIndex and Names are populated only for Version == 2.0.
	GlyphNameIndex []uint16
	Names          []string
}

// GlyphName resolves glyph i's PostScript name for a version 2.0 table.
// It falls back to the standard Macintosh name for indices < 258, then
// to the font's custom name pool, and finally to the numeric index
// itself as a string when neither source covers it.
func (m *Model) GlyphName(i int) string {
	if i < 0 || i >= len(m.GlyphNameIndex) {
		return ""
	}
	idx := m.GlyphNameIndex[i]
	if int(idx) < len(macGlyphNames) && macGlyphNames[idx] != "" {
		return macGlyphNames[idx]
	}
	j := int(idx) - 258
	if j >= 0 && j < len(m.Names) {
		return m.Names[j]
	}
	return strconv.Itoa(int(idx))
}

// Builder implements the Builder lifecycle for "post".
type Builder struct {
	font.BuilderBase
	header font.Header
	model  *Model
}

func newBuilder(tag font.Tag, header font.Header, d *data.FontData) (font.Builder, error) {
	return &Builder{BuilderBase: font.NewBuilderBase(tag, d), header: header}, nil
}

func (b *Builder) Header() font.Header       { return b.header }
func (b *Builder) Data() *data.FontData      { return b.Backing() }
func (b *Builder) SubReadyToSerialize() bool { return true }

func (b *Builder) SubDataSet(d *data.FontData) {
	b.BuilderBase.SubDataSet(d)
	b.model = nil
}

// Model decodes and caches the model on first access.
func (b *Builder) Model() (*Model, error) {
	if b.model != nil {
		return b.model, nil
	}
	d := b.Backing()
	if d == nil {
		b.model = &Model{Version: version3}
		return b.model, nil
	}
	if d.Length() < 32 {
		return nil, &font.CorruptTableError{Tag: font.TagPost, Reason: "post table shorter than 32-byte header"}
	}
	m := &Model{}
	version, _ := d.ULong(0)
	m.Version = version
	italicAngle, _ := d.Fixed(4)
	m.ItalicAngle = data.FixedToFloat64(italicAngle)
	m.UnderlinePosition, _ = d.Short(8)
	m.UnderlineThickness, _ = d.Short(10)
	m.IsFixedPitch, _ = d.ULong(12)
	m.MinMemType42, _ = d.ULong(16)
	m.MaxMemType42, _ = d.ULong(20)
	m.MinMemType1, _ = d.ULong(24)
	m.MaxMemType1, _ = d.ULong(28)

	if version == version2 && d.Length() >= 34 {
		numGlyphs, err := d.UShort(32)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagPost, Err: err}
		}
		m.GlyphNameIndex = make([]uint16, numGlyphs)
		off := 34
		maxCustom := -1
		for i := 0; i < int(numGlyphs); i++ {
			idx, err := d.UShort(off)
			if err != nil {
				return nil, &font.OutOfBoundsError{Tag: font.TagPost, Err: err}
			}
			m.GlyphNameIndex[i] = idx
			if j := int(idx) - 258; j > maxCustom {
				maxCustom = j
			}
			off += 2
		}
		if maxCustom >= 0 {
			m.Names = make([]string, maxCustom+1)
			for i := 0; i <= maxCustom && off < d.Length(); i++ {
				length, err := d.UByte(off)
				if err != nil {
					break
				}
				off++
				sl, err := d.Slice(off, int(length))
				if err != nil {
					break
				}
				m.Names[i] = string(sl.Bytes())
				off += int(length)
			}
		}
	}
	b.model = m
	return m, nil
}

func (b *Builder) SubDataSizeToSerialize() int {
	return b.PassthroughSize()
}

func (b *Builder) SubSerialize(w *data.FontData) (int, error) {
	return b.PassthroughSerialize(w)
}
