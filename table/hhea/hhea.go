// Package hhea decodes and encodes the sfnt "hhea" table: the horizontal
// header whose NumberOfHMetrics field tells "hmtx" how many of its
// per-glyph advance-width records are explicit versus repeated.
package hhea

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
)

func init() {
	font.Register(font.TagHhea, newBuilder)
}

const encodedSize = 36

// Model is the editable "hhea" table.
type Model struct {
	MajorVersion        uint16
	MinorVersion        uint16
	Ascender            int16
	Descender           int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	MetricDataFormat    int16
	NumberOfHMetrics    uint16
}

// Builder implements the Builder lifecycle for "hhea".
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
		b.model = &Model{MajorVersion: 1}
		return b.model, nil
	}
	if d.Length() < encodedSize {
		return nil, &font.CorruptTableError{Tag: font.TagHhea, Reason: "hhea table shorter than 36 bytes"}
	}
	m := &Model{}
	m.MajorVersion, _ = d.UShort(0)
	m.MinorVersion, _ = d.UShort(2)
	m.Ascender, _ = d.Short(4)
	m.Descender, _ = d.Short(6)
	m.LineGap, _ = d.Short(8)
	m.AdvanceWidthMax, _ = d.UShort(10)
	m.MinLeftSideBearing, _ = d.Short(12)
	m.MinRightSideBearing, _ = d.Short(14)
	m.XMaxExtent, _ = d.Short(16)
	m.CaretSlopeRise, _ = d.Short(18)
	m.CaretSlopeRun, _ = d.Short(20)
	m.CaretOffset, _ = d.Short(22)
	m.MetricDataFormat, _ = d.Short(32)
	m.NumberOfHMetrics, _ = d.UShort(34)
	b.model = m
	return m, nil
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
	_, _ = w.WriteUShort(0, m.MajorVersion)
	_, _ = w.WriteUShort(2, m.MinorVersion)
	_, _ = w.WriteShort(4, m.Ascender)
	_, _ = w.WriteShort(6, m.Descender)
	_, _ = w.WriteShort(8, m.LineGap)
	_, _ = w.WriteUShort(10, m.AdvanceWidthMax)
	_, _ = w.WriteShort(12, m.MinLeftSideBearing)
	_, _ = w.WriteShort(14, m.MinRightSideBearing)
	_, _ = w.WriteShort(16, m.XMaxExtent)
	_, _ = w.WriteShort(18, m.CaretSlopeRise)
	_, _ = w.WriteShort(20, m.CaretSlopeRun)
	_, _ = w.WriteShort(22, m.CaretOffset)
	// bytes 24..31 are reserved and left zero.
	_, _ = w.WriteShort(32, m.MetricDataFormat)
	_, _ = w.WriteUShort(34, m.NumberOfHMetrics)
	return encodedSize, nil
}
