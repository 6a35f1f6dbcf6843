// Package gdef decodes the sfnt "GDEF" table down to record level: the
// four (later six) top-level subtable offsets, plus the glyph class
// definition subtable used to drive lookup-flag glyph filtering
// (LOOKUP_FLAG_IGNORE_MARKS and friends in the shaping layer).
package gdef

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
)

func init() {
	font.Register(font.TagGDEF, newBuilder)
}

// Glyph classes as defined by the glyphClassDef subtable.
const (
	ClassBase      = 1
	ClassLigature  = 2
	ClassMark      = 3
	ClassComponent = 4
)

// ClassRangeRecord is one entry of a format-2 class definition table.
type ClassRangeRecord struct {
	StartGlyphID uint16
	EndGlyphID   uint16
	Class        uint16
}

// ClassDef is a decoded glyph (or mark-attachment) class definition
// subtable, in either of its two on-disk formats.
type ClassDef struct {
	Format uint16
	// Format 1.
	StartGlyphID uint16
	ClassValues  []uint16
	// Format 2.
	Ranges []ClassRangeRecord
}

// Class returns glyphID's class, or 0 if the table doesn't assign one.
func (c *ClassDef) Class(glyphID uint16) uint16 {
	switch c.Format {
	case 1:
		if glyphID < c.StartGlyphID {
			return 0
		}
		i := int(glyphID - c.StartGlyphID)
		if i >= len(c.ClassValues) {
			return 0
		}
		return c.ClassValues[i]
	case 2:
		for _, r := range c.Ranges {
			if glyphID >= r.StartGlyphID && glyphID <= r.EndGlyphID {
				return r.Class
			}
		}
	}
	return 0
}

// Model is the editable "GDEF" table at record level.
type Model struct {
	MajorVersion, MinorVersion uint16
	GlyphClassDef              *ClassDef
	AttachListOffset           uint16
	LigCaretListOffset         uint16
	MarkAttachClassDef         *ClassDef
	// MarkGlyphSetsDefOffset is present only when MinorVersion >= 2.
	MarkGlyphSetsDefOffset uint16
	// ItemVarStoreOffset is present only when MinorVersion >= 3.
	ItemVarStoreOffset uint32
}

// Builder implements the Builder lifecycle for "GDEF".
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
		b.model = &Model{}
		return b.model, nil
	}
	major, err := d.UShort(0)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagGDEF, Err: err}
	}
	minor, err := d.UShort(2)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagGDEF, Err: err}
	}
	m := &Model{MajorVersion: major, MinorVersion: minor}
	glyphClassDefOffset, err := d.UShort(4)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagGDEF, Err: err}
	}
	if m.AttachListOffset, err = d.UShort(6); err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagGDEF, Err: err}
	}
	if m.LigCaretListOffset, err = d.UShort(8); err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagGDEF, Err: err}
	}
	markAttachClassDefOffset, err := d.UShort(10)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagGDEF, Err: err}
	}
	if minor >= 2 {
		if m.MarkGlyphSetsDefOffset, err = d.UShort(12); err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagGDEF, Err: err}
		}
	}
	if minor >= 3 {
		if m.ItemVarStoreOffset, err = d.ULong(14); err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagGDEF, Err: err}
		}
	}
	if glyphClassDefOffset != 0 {
		if m.GlyphClassDef, err = decodeClassDef(d, int(glyphClassDefOffset)); err != nil {
			return nil, err
		}
	}
	if markAttachClassDefOffset != 0 {
		if m.MarkAttachClassDef, err = decodeClassDef(d, int(markAttachClassDefOffset)); err != nil {
			return nil, err
		}
	}
	b.model = m
	return m, nil
}

func decodeClassDef(d *data.FontData, base int) (*ClassDef, error) {
	format, err := d.UShort(base)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagGDEF, Err: err}
	}
	c := &ClassDef{Format: format}
	switch format {
	case 1:
		startGlyph, err := d.UShort(base + 2)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagGDEF, Err: err}
		}
		count, err := d.UShort(base + 4)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagGDEF, Err: err}
		}
		c.StartGlyphID = startGlyph
		c.ClassValues = make([]uint16, count)
		for i := 0; i < int(count); i++ {
			v, err := d.UShort(base + 6 + i*2)
			if err != nil {
				return nil, &font.OutOfBoundsError{Tag: font.TagGDEF, Err: err}
			}
			c.ClassValues[i] = v
		}
	case 2:
		count, err := d.UShort(base + 2)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagGDEF, Err: err}
		}
		c.Ranges = make([]ClassRangeRecord, count)
		for i := 0; i < int(count); i++ {
			off := base + 4 + i*6
			start, err := d.UShort(off)
			if err != nil {
				return nil, &font.OutOfBoundsError{Tag: font.TagGDEF, Err: err}
			}
			end, err := d.UShort(off + 2)
			if err != nil {
				return nil, &font.OutOfBoundsError{Tag: font.TagGDEF, Err: err}
			}
			class, err := d.UShort(off + 4)
			if err != nil {
				return nil, &font.OutOfBoundsError{Tag: font.TagGDEF, Err: err}
			}
			c.Ranges[i] = ClassRangeRecord{StartGlyphID: start, EndGlyphID: end, Class: class}
		}
	default:
		return nil, &font.UnknownFormatError{Tag: font.TagGDEF, Format: format}
	}
	return c, nil
}

func (b *Builder) SubDataSizeToSerialize() int {
	return b.PassthroughSize()
}

func (b *Builder) SubSerialize(w *data.FontData) (int, error) {
	return b.PassthroughSerialize(w)
}
