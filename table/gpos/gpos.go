// Package gpos decodes the sfnt "GPOS" table down to record level,
// mirroring "GSUB": the Script/Feature/Lookup list directories share an
// identical binary layout between the two tables, but GPOS's lookup
// subtable formats (single/pair adjustment, cursive/mark attachment, ...)
// differ and are out of this core layer's scope.
package gpos

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
)

func init() {
	font.Register(font.TagGPOS, newBuilder)
}

// TagRecord is one {tag, offset} pair from a ScriptList, FeatureList, or
// LookupList's top-level directory.
type TagRecord struct {
	Tag    font.Tag
	Offset uint16
}

// Model is the editable "GPOS" table at record level.
type Model struct {
	MajorVersion, MinorVersion uint16
	Scripts                    []TagRecord
	Features                   []TagRecord
	LookupOffsets              []uint16
	FeatureVariationsOffset    uint32
}

// Builder implements the Builder lifecycle for "GPOS".
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
		return nil, &font.OutOfBoundsError{Tag: font.TagGPOS, Err: err}
	}
	minor, err := d.UShort(2)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagGPOS, Err: err}
	}
	scriptListOffset, err := d.UShort(4)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagGPOS, Err: err}
	}
	featureListOffset, err := d.UShort(6)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagGPOS, Err: err}
	}
	lookupListOffset, err := d.UShort(8)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagGPOS, Err: err}
	}
	m := &Model{MajorVersion: major, MinorVersion: minor}
	if minor == 1 {
		if m.FeatureVariationsOffset, err = d.ULong(10); err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagGPOS, Err: err}
		}
	}
	if m.Scripts, err = decodeTagOffsetList(d, int(scriptListOffset)); err != nil {
		return nil, err
	}
	if m.Features, err = decodeTagOffsetList(d, int(featureListOffset)); err != nil {
		return nil, err
	}
	if lookupListOffset != 0 {
		count, err := d.UShort(int(lookupListOffset))
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagGPOS, Err: err}
		}
		m.LookupOffsets = make([]uint16, count)
		for i := 0; i < int(count); i++ {
			off, err := d.UShort(int(lookupListOffset) + 2 + i*2)
			if err != nil {
				return nil, &font.OutOfBoundsError{Tag: font.TagGPOS, Err: err}
			}
			m.LookupOffsets[i] = off
		}
	}
	b.model = m
	return m, nil
}

func decodeTagOffsetList(d *data.FontData, base int) ([]TagRecord, error) {
	if base == 0 {
		return nil, nil
	}
	count, err := d.UShort(base)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagGPOS, Err: err}
	}
	out := make([]TagRecord, count)
	for i := 0; i < int(count); i++ {
		off := base + 2 + i*6
		rawTag, err := d.ULong(off)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagGPOS, Err: err}
		}
		recOffset, err := d.UShort(off + 4)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagGPOS, Err: err}
		}
		out[i] = TagRecord{Tag: font.TagFromUint32(rawTag), Offset: recOffset}
	}
	return out, nil
}

func (b *Builder) SubDataSizeToSerialize() int {
	return b.PassthroughSize()
}

func (b *Builder) SubSerialize(w *data.FontData) (int, error) {
	return b.PassthroughSerialize(w)
}
