// Package head decodes and encodes the sfnt "head" table: the font-wide
// header carrying the units-per-em, the bounding box, and the
// indexToLocFormat flag the "loca" table depends on.
package head

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
)

func init() {
	font.Register(font.TagHead, newBuilder)
}

// IndexToLocFormat selects the on-disk width of "loca" table entries.
type IndexToLocFormat int16

const (
	ShortLoca IndexToLocFormat = 0
	LongLoca  IndexToLocFormat = 1
)

// Model is the editable, fully materialized "head" table.
type Model struct {
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       int32 // 16.16 fixed
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64
	Modified           int64
	XMin, YMin         int16
	XMax, YMax         int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   IndexToLocFormat
	GlyphDataFormat    int16
}

const encodedSize = 54

// Builder implements the view/model Builder lifecycle for "head": reads are
// satisfied from a lazily decoded Model; any mutator raises modelChanged.
type Builder struct {
	font.BuilderBase
	header font.Header
	model  *Model
}

func newBuilder(tag font.Tag, header font.Header, d *data.FontData) (font.Builder, error) {
	return &Builder{BuilderBase: font.NewBuilderBase(tag, d), header: header}, nil
}

func (b *Builder) Header() font.Header      { return b.header }
func (b *Builder) Data() *data.FontData     { return b.Backing() }
func (b *Builder) SubReadyToSerialize() bool { return true }

func (b *Builder) SubDataSet(d *data.FontData) {
	b.BuilderBase.SubDataSet(d)
	b.model = nil
}

// Model returns the decoded model, materializing it on first access.
func (b *Builder) Model() (*Model, error) {
	if b.model != nil {
		return b.model, nil
	}
	d := b.Backing()
	if d == nil {
		b.model = &Model{MagicNumber: 0x5F0F3CF5, UnitsPerEm: 1000}
		return b.model, nil
	}
	m, err := decode(d)
	if err != nil {
		return nil, err
	}
	b.model = m
	return m, nil
}

// SetIndexToLocFormat mutates the model and raises modelChanged.
func (b *Builder) SetIndexToLocFormat(f IndexToLocFormat) error {
	m, err := b.Model()
	if err != nil {
		return err
	}
	m.IndexToLocFormat = f
	b.SetModelChanged()
	return nil
}

func decode(d *data.FontData) (*Model, error) {
	if d.Length() < encodedSize {
		return nil, &font.CorruptTableError{Tag: font.TagHead, Reason: "head table shorter than 54 bytes"}
	}
	m := &Model{}
	var err error
	m.MajorVersion, err = d.UShort(0)
	if err != nil {
		return nil, err
	}
	m.MinorVersion, _ = d.UShort(2)
	m.FontRevision, _ = d.Fixed(4)
	m.CheckSumAdjustment, _ = d.ULong(8)
	m.MagicNumber, _ = d.ULong(12)
	m.Flags, _ = d.UShort(16)
	m.UnitsPerEm, _ = d.UShort(18)
	m.Created, _ = d.LongDateTime(20)
	m.Modified, _ = d.LongDateTime(28)
	xmin, _ := d.Short(36)
	ymin, _ := d.Short(38)
	xmax, _ := d.Short(40)
	ymax, _ := d.Short(42)
	m.XMin, m.YMin, m.XMax, m.YMax = xmin, ymin, xmax, ymax
	m.MacStyle, _ = d.UShort(44)
	m.LowestRecPPEM, _ = d.UShort(46)
	m.FontDirectionHint, _ = d.Short(48)
	ilf, _ := d.Short(50)
	m.IndexToLocFormat = IndexToLocFormat(ilf)
	m.GlyphDataFormat, _ = d.Short(52)
	return m, nil
}

func (m *Model) encode(w *data.FontData) (int, error) {
	_, _ = w.WriteUShort(0, m.MajorVersion)
	_, _ = w.WriteUShort(2, m.MinorVersion)
	_, _ = w.WriteFixed(4, m.FontRevision)
	_, _ = w.WriteULong(8, m.CheckSumAdjustment)
	_, _ = w.WriteULong(12, m.MagicNumber)
	_, _ = w.WriteUShort(16, m.Flags)
	_, _ = w.WriteUShort(18, m.UnitsPerEm)
	_, _ = w.WriteLongDateTime(20, m.Created)
	_, _ = w.WriteLongDateTime(28, m.Modified)
	_, _ = w.WriteShort(36, m.XMin)
	_, _ = w.WriteShort(38, m.YMin)
	_, _ = w.WriteShort(40, m.XMax)
	_, _ = w.WriteShort(42, m.YMax)
	_, _ = w.WriteUShort(44, m.MacStyle)
	_, _ = w.WriteUShort(46, m.LowestRecPPEM)
	_, _ = w.WriteShort(48, m.FontDirectionHint)
	_, _ = w.WriteShort(50, int16(m.IndexToLocFormat))
	_, _ = w.WriteShort(52, m.GlyphDataFormat)
	return encodedSize, nil
}

func (b *Builder) SubDataSizeToSerialize() int {
	if !b.ModelChanged() {
		return b.PassthroughSize()
	}
	return encodedSize
}

func (b *Builder) SubSerialize(w *data.FontData) (int, error) {
	if !b.ModelChanged() {
		return b.PassthroughSerialize(w)
	}
	m, err := b.Model()
	if err != nil {
		return 0, err
	}
	return m.encode(w)
}
