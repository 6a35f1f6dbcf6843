// Package loca decodes and encodes the sfnt "loca" table: the array of
// glyph offsets into "glyf" that head.IndexToLocFormat says is stored as
// either half-scale ushorts (format 0) or full ulongs (format 1).
package loca

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
	"github.com/naturezhm/sfntly/table/head"
)

func init() {
	font.Register(font.TagLoca, newBuilder)
}

// Model is the editable "loca" table: numGlyphs+1 non-decreasing offsets
// into "glyf". Glyph i occupies glyf bytes [Offsets[i], Offsets[i+1]); a
// zero-length range means the glyph has no outline.
type Model struct {
	Offsets []uint32
	Format  head.IndexToLocFormat
}

// NumGlyphs returns the number of glyphs described by the table.
func (m *Model) NumGlyphs() int {
	if len(m.Offsets) == 0 {
		return 0
	}
	return len(m.Offsets) - 1
}

// GlyphOffset returns the start offset of glyph i within "glyf".
func (m *Model) GlyphOffset(i int) uint32 { return m.Offsets[i] }

// GlyphLength returns the byte length of glyph i within "glyf".
func (m *Model) GlyphLength(i int) uint32 { return m.Offsets[i+1] - m.Offsets[i] }

// Builder implements the Builder lifecycle for "loca".
type Builder struct {
	font.BuilderBase
	header      font.Header
	model       *Model
	format      head.IndexToLocFormat
	wired       bool
	headBuilder *head.Builder
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

// Wire records the sibling head builder so Model can pull
// IndexToLocFormat lazily at decode time, regardless of Wire call order.
func (b *Builder) Wire(f *font.Font) error {
	b.headBuilder, _ = f.Builder(font.TagHead).(*head.Builder)
	b.wired = true
	return nil
}

// Model decodes and caches the model on first access, validating that
// offsets are non-decreasing (spec §3, §8).
func (b *Builder) Model() (*Model, error) {
	if b.model != nil {
		return b.model, nil
	}
	if b.headBuilder != nil {
		hm, err := b.headBuilder.Model()
		if err != nil {
			return nil, err
		}
		b.format = hm.IndexToLocFormat
	}
	d := b.Backing()
	if d == nil {
		b.model = &Model{Format: b.format}
		return b.model, nil
	}
	var offsets []uint32
	if b.format == head.LongLoca {
		n := d.Length() / 4
		offsets = make([]uint32, n)
		for i := 0; i < n; i++ {
			offsets[i], _ = d.ULong(i * 4)
		}
	} else {
		n := d.Length() / 2
		offsets = make([]uint32, n)
		for i := 0; i < n; i++ {
			v, _ := d.UShort(i * 2)
			offsets[i] = uint32(v) * 2
		}
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return nil, &font.CorruptTableError{Tag: font.TagLoca, Reason: "loca offsets are not non-decreasing"}
		}
	}
	m := &Model{Offsets: offsets, Format: b.format}
	b.model = m
	return m, nil
}

func (b *Builder) SubDataSizeToSerialize() int {
	if !b.ModelChanged() {
		return b.PassthroughSize()
	}
	m, _ := b.Model()
	if m == nil {
		return 0
	}
	if m.Format == head.LongLoca {
		return len(m.Offsets) * 4
	}
	return len(m.Offsets) * 2
}

func (b *Builder) SubSerialize(w *data.FontData) (int, error) {
	if !b.ModelChanged() {
		return b.PassthroughSerialize(w)
	}
	m, err := b.Model()
	if err != nil {
		return 0, err
	}
	if m.Format == head.LongLoca {
		for i, off := range m.Offsets {
			_, _ = w.WriteULong(i*4, off)
		}
		return len(m.Offsets) * 4, nil
	}
	for i, off := range m.Offsets {
		_, _ = w.WriteUShort(i*2, uint16(off/2))
	}
	return len(m.Offsets) * 2, nil
}
