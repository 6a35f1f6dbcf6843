// Package hmtx decodes and encodes the sfnt "hmtx" table: per-glyph
// horizontal advance widths and left side bearings. Its layout depends on
// two sibling tables ("hhea".NumberOfHMetrics and "maxp".NumGlyphs), wired
// in explicitly via font.Wirer rather than through a back-pointer.
package hmtx

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
	"github.com/naturezhm/sfntly/table/hhea"
	"github.com/naturezhm/sfntly/table/maxp"
)

func init() {
	font.Register(font.TagHmtx, newBuilder)
}

// HMetric is one explicit advance-width/left-side-bearing pair.
type HMetric struct {
	AdvanceWidth    uint16
	LeftSideBearing int16
}

// Model is the editable "hmtx" table. Glyphs at index >= len(HMetrics)
// reuse the last entry's AdvanceWidth and take their own
// LeftSideBearing from TrailingLSBs.
type Model struct {
	HMetrics     []HMetric
	TrailingLSBs []int16
}

// AdvanceWidth returns the advance width for glyph i.
func (m *Model) AdvanceWidth(i int) uint16 {
	if i < len(m.HMetrics) {
		return m.HMetrics[i].AdvanceWidth
	}
	if len(m.HMetrics) == 0 {
		return 0
	}
	return m.HMetrics[len(m.HMetrics)-1].AdvanceWidth
}

// LeftSideBearing returns the left side bearing for glyph i.
func (m *Model) LeftSideBearing(i int) int16 {
	if i < len(m.HMetrics) {
		return m.HMetrics[i].LeftSideBearing
	}
	j := i - len(m.HMetrics)
	if j >= 0 && j < len(m.TrailingLSBs) {
		return m.TrailingLSBs[j]
	}
	return 0
}

// Builder implements the Builder lifecycle for "hmtx".
type Builder struct {
	font.BuilderBase
	header           font.Header
	model            *Model
	numberOfHMetrics int
	numGlyphs        int
	wired            bool
	hhea             *hhea.Builder
	maxp             *maxp.Builder
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

// Wire records the sibling hhea/maxp builders so Model can pull their
// fields lazily at decode time. It only stores the pointers: decoding is
// deferred to the first Model() call, so it does not matter whether hhea's
// or maxp's own Wire (if any) has run yet.
func (b *Builder) Wire(f *font.Font) error {
	b.hhea, _ = f.Builder(font.TagHhea).(*hhea.Builder)
	b.maxp, _ = f.Builder(font.TagMaxp).(*maxp.Builder)
	b.wired = true
	return nil
}

// Model decodes and caches the model on first access. It requires Wire to
// have run first (the font loader does this automatically); calling it on
// a standalone Builder not produced by loading a Font fails.
func (b *Builder) Model() (*Model, error) {
	if b.model != nil {
		return b.model, nil
	}
	if !b.wired {
		return nil, &font.CorruptTableError{Tag: font.TagHmtx, Reason: "hmtx requires hhea/maxp to be wired before decoding"}
	}
	if b.hhea != nil {
		hm, err := b.hhea.Model()
		if err != nil {
			return nil, err
		}
		b.numberOfHMetrics = int(hm.NumberOfHMetrics)
	}
	if b.maxp != nil {
		mm, err := b.maxp.Model()
		if err != nil {
			return nil, err
		}
		b.numGlyphs = int(mm.NumGlyphs)
	}
	d := b.Backing()
	if d == nil {
		b.model = &Model{}
		return b.model, nil
	}
	need := b.numberOfHMetrics*4 + (b.numGlyphs-b.numberOfHMetrics)*2
	if need < 0 || d.Length() < need {
		return nil, &font.CorruptTableError{Tag: font.TagHmtx, Reason: "hmtx table shorter than hhea/maxp imply"}
	}
	m := &Model{HMetrics: make([]HMetric, b.numberOfHMetrics)}
	off := 0
	for i := 0; i < b.numberOfHMetrics; i++ {
		aw, _ := d.UShort(off)
		lsb, _ := d.Short(off + 2)
		m.HMetrics[i] = HMetric{AdvanceWidth: aw, LeftSideBearing: lsb}
		off += 4
	}
	trailing := b.numGlyphs - b.numberOfHMetrics
	if trailing > 0 {
		m.TrailingLSBs = make([]int16, trailing)
		for i := 0; i < trailing; i++ {
			lsb, _ := d.Short(off)
			m.TrailingLSBs[i] = lsb
			off += 2
		}
	}
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
	return len(m.HMetrics)*4 + len(m.TrailingLSBs)*2
}

func (b *Builder) SubSerialize(w *data.FontData) (int, error) {
	if !b.ModelChanged() {
		return b.PassthroughSerialize(w)
	}
	m, err := b.Model()
	if err != nil {
		return 0, err
	}
	off := 0
	for _, hm := range m.HMetrics {
		_, _ = w.WriteUShort(off, hm.AdvanceWidth)
		_, _ = w.WriteShort(off+2, hm.LeftSideBearing)
		off += 4
	}
	for _, lsb := range m.TrailingLSBs {
		_, _ = w.WriteShort(off, lsb)
		off += 2
	}
	return off, nil
}
