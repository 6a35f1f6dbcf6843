// Package os2 decodes the sfnt "OS/2" table: OS/2 and Windows metrics,
// whose record grows with each format version (0 through 5); fields
// introduced by a later version are zero-valued when the table's
// declared version predates them.
package os2

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
)

func init() {
	font.Register(font.TagOS2, newBuilder)
}

// Model is the editable "OS/2" table.
type Model struct {
	Version             uint16
	XAvgCharWidth       int16
	UsWeightClass       uint16
	UsWidthClass        uint16
	FsType              uint16
	YSubscriptXSize     int16
	YSubscriptYSize     int16
	YSubscriptXOffset   int16
	YSubscriptYOffset   int16
	YSuperscriptXSize   int16
	YSuperscriptYSize   int16
	YSuperscriptXOffset int16
	YSuperscriptYOffset int16
	YStrikeoutSize      int16
	YStrikeoutPosition  int16
	SFamilyClass        int16
	Panose              [10]byte
	UlUnicodeRange      [4]uint32
	AchVendID           [4]byte
	FsSelection         uint16
	UsFirstCharIndex    uint16
	UsLastCharIndex     uint16
	STypoAscender       int16
	STypoDescender      int16
	STypoLineGap        int16
	UsWinAscent         uint16
	UsWinDescent        uint16
	// Present when Version >= 1.
	UlCodePageRange [2]uint32
	// Present when Version >= 2.
	SxHeight      int16
	SCapHeight    int16
	UsDefaultChar uint16
	UsBreakChar   uint16
	UsMaxContext  uint16
	// Present when Version == 5.
	UsLowerOpticalPointSize uint16
	UsUpperOpticalPointSize uint16
}

// Builder implements the Builder lifecycle for "OS/2".
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
	if d.Length() < 78 {
		return nil, &font.CorruptTableError{Tag: font.TagOS2, Reason: "OS/2 table shorter than version-0 minimum"}
	}
	m := &Model{}
	m.Version, _ = d.UShort(0)
	m.XAvgCharWidth, _ = d.Short(2)
	m.UsWeightClass, _ = d.UShort(4)
	m.UsWidthClass, _ = d.UShort(6)
	m.FsType, _ = d.UShort(8)
	m.YSubscriptXSize, _ = d.Short(10)
	m.YSubscriptYSize, _ = d.Short(12)
	m.YSubscriptXOffset, _ = d.Short(14)
	m.YSubscriptYOffset, _ = d.Short(16)
	m.YSuperscriptXSize, _ = d.Short(18)
	m.YSuperscriptYSize, _ = d.Short(20)
	m.YSuperscriptXOffset, _ = d.Short(22)
	m.YSuperscriptYOffset, _ = d.Short(24)
	m.YStrikeoutSize, _ = d.Short(26)
	m.YStrikeoutPosition, _ = d.Short(28)
	m.SFamilyClass, _ = d.Short(30)
	copy(m.Panose[:], d.Bytes()[32:42])
	for i := 0; i < 4; i++ {
		m.UlUnicodeRange[i], _ = d.ULong(42 + i*4)
	}
	copy(m.AchVendID[:], d.Bytes()[58:62])
	m.FsSelection, _ = d.UShort(62)
	m.UsFirstCharIndex, _ = d.UShort(64)
	m.UsLastCharIndex, _ = d.UShort(66)
	m.STypoAscender, _ = d.Short(68)
	m.STypoDescender, _ = d.Short(70)
	m.STypoLineGap, _ = d.Short(72)
	m.UsWinAscent, _ = d.UShort(74)
	m.UsWinDescent, _ = d.UShort(76)
	if m.Version >= 1 && d.Length() >= 86 {
		m.UlCodePageRange[0], _ = d.ULong(78)
		m.UlCodePageRange[1], _ = d.ULong(82)
	}
	if m.Version >= 2 && d.Length() >= 96 {
		m.SxHeight, _ = d.Short(86)
		m.SCapHeight, _ = d.Short(88)
		m.UsDefaultChar, _ = d.UShort(90)
		m.UsBreakChar, _ = d.UShort(92)
		m.UsMaxContext, _ = d.UShort(94)
	}
	if m.Version == 5 && d.Length() >= 100 {
		m.UsLowerOpticalPointSize, _ = d.UShort(96)
		m.UsUpperOpticalPointSize, _ = d.UShort(98)
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
