// Package maxp decodes and encodes the sfnt "maxp" table. Only numGlyphs
// is exposed as a model field; the legacy TrueType-specific memory budget
// fields (version 1.0) are preserved verbatim via the raw bytes when
// unchanged, per the pass-through discipline of the Builder lifecycle.
package maxp

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
)

func init() {
	font.Register(font.TagMaxp, newBuilder)
}

const (
	versionCFF      uint32 = 0x00005000
	versionTrueType uint32 = 0x00010000
)

// Model is the editable "maxp" table; NumGlyphs is the field every other
// table (loca, hmtx) depends on.
type Model struct {
	Version   uint32
	NumGlyphs uint16
	// V1 holds the remaining version-1.0 fields verbatim so a model edit
	// that only touches NumGlyphs still round-trips them.
	V1 [26]byte
}

// Builder implements the Builder lifecycle for "maxp".
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
		b.model = &Model{Version: versionTrueType}
		return b.model, nil
	}
	if d.Length() < 6 {
		return nil, &font.CorruptTableError{Tag: font.TagMaxp, Reason: "maxp table shorter than 6 bytes"}
	}
	m := &Model{}
	m.Version, _ = d.ULong(0)
	m.NumGlyphs, _ = d.UShort(4)
	if m.Version == versionTrueType && d.Length() >= 32 {
		copy(m.V1[:], d.Bytes()[6:32])
	}
	b.model = m
	return m, nil
}

// SetNumGlyphs mutates the model and raises modelChanged.
func (b *Builder) SetNumGlyphs(n uint16) error {
	m, err := b.Model()
	if err != nil {
		return err
	}
	m.NumGlyphs = n
	b.SetModelChanged()
	return nil
}

func (b *Builder) SubDataSizeToSerialize() int {
	if !b.ModelChanged() {
		return b.PassthroughSize()
	}
	m, _ := b.Model()
	if m.Version == versionCFF {
		return 6
	}
	return 32
}

func (b *Builder) SubSerialize(w *data.FontData) (int, error) {
	if !b.ModelChanged() {
		return b.PassthroughSerialize(w)
	}
	m, err := b.Model()
	if err != nil {
		return 0, err
	}
	_, _ = w.WriteULong(0, m.Version)
	_, _ = w.WriteUShort(4, m.NumGlyphs)
	if m.Version == versionCFF {
		return 6, nil
	}
	_, _ = w.WriteBytes(6, m.V1[:])
	return 32, nil
}
