// Package glyf decodes and encodes the sfnt "glyf" table: the variable-
// length outline record for each glyph, located via the sibling "loca"
// table. Per spec.md's view-table discipline, glyf never materializes
// more than the glyph currently requested; corrupt offsets inside an
// individual glyph only surface when that glyph is accessed.
package glyf

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
	"github.com/naturezhm/sfntly/table/loca"
)

func init() {
	font.Register(font.TagGlyf, newBuilder)
}

// Builder is a view table over the raw "glyf" bytes: it decodes glyph
// outlines on demand via the sibling "loca" table's offsets, and never
// allocates heap state proportional to the whole table's size.
type Builder struct {
	font.BuilderBase
	header font.Header
	loca   *loca.Builder
}

func newBuilder(tag font.Tag, header font.Header, d *data.FontData) (font.Builder, error) {
	return &Builder{BuilderBase: font.NewBuilderBase(tag, d), header: header}, nil
}

func (b *Builder) Header() font.Header       { return b.header }
func (b *Builder) Data() *data.FontData      { return b.Backing() }
func (b *Builder) SubReadyToSerialize() bool { return true }

func (b *Builder) SubDataSet(d *data.FontData) {
	b.BuilderBase.SubDataSet(d)
}

func (b *Builder) SubDataSizeToSerialize() int {
	return b.PassthroughSize()
}

func (b *Builder) SubSerialize(w *data.FontData) (int, error) {
	return b.PassthroughSerialize(w)
}

// Wire records the sibling loca builder used to locate each glyph's byte
// range within the raw glyf bytes.
func (b *Builder) Wire(f *font.Font) error {
	b.loca, _ = f.Builder(font.TagLoca).(*loca.Builder)
	return nil
}

// NumGlyphs returns the glyph count as reported by "loca".
func (b *Builder) NumGlyphs() (int, error) {
	if b.loca == nil {
		return 0, &font.CorruptTableError{Tag: font.TagGlyf, Reason: "glyf requires loca to be wired"}
	}
	m, err := b.loca.Model()
	if err != nil {
		return 0, err
	}
	return m.NumGlyphs(), nil
}

// Glyph decodes and returns glyph i's outline, dispatching on the
// first signed short (numberOfContours): negative selects a composite
// glyph, non-negative a simple glyph with that many contours. A glyph of
// zero length (loca[i] == loca[i+1]) has no outline.
func (b *Builder) Glyph(i int) (*Glyph, error) {
	if b.loca == nil {
		return nil, &font.CorruptTableError{Tag: font.TagGlyf, Reason: "glyf requires loca to be wired"}
	}
	lm, err := b.loca.Model()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= lm.NumGlyphs() {
		return nil, &font.CorruptTableError{Tag: font.TagGlyf, Reason: "glyph index out of range"}
	}
	length := lm.GlyphLength(i)
	if length == 0 {
		return &Glyph{}, nil
	}
	d := b.Backing()
	if d == nil {
		return nil, &font.CorruptTableError{Tag: font.TagGlyf, Reason: "glyf table has no backing bytes"}
	}
	gd, err := d.Slice(int(lm.GlyphOffset(i)), int(length))
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagGlyf, Err: err}
	}
	return decodeGlyph(gd)
}
