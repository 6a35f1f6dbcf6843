// Package ebdt decodes the sfnt "EBDT" table: the embedded bitmap image
// data itself. EBDT has no structure of its own beyond a version header;
// every image is located by the sibling "EBLC" table's index subtables,
// so this package's only job is to hand back byte ranges on request.
package ebdt

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
	"github.com/naturezhm/sfntly/table/eblc"
)

func init() {
	font.Register(font.TagEBDT, newBuilder)
}

// Builder is a view table over the raw "EBDT" bytes.
type Builder struct {
	font.BuilderBase
	header font.Header
	eblc   *eblc.Builder
}

func newBuilder(tag font.Tag, header font.Header, d *data.FontData) (font.Builder, error) {
	return &Builder{BuilderBase: font.NewBuilderBase(tag, d), header: header}, nil
}

func (b *Builder) Header() font.Header       { return b.header }
func (b *Builder) Data() *data.FontData      { return b.Backing() }
func (b *Builder) SubReadyToSerialize() bool { return true }

func (b *Builder) SubDataSizeToSerialize() int { return b.PassthroughSize() }

func (b *Builder) SubSerialize(w *data.FontData) (int, error) { return b.PassthroughSerialize(w) }

// Wire records the sibling EBLC builder used to locate each glyph's
// bitmap image within the raw EBDT bytes.
func (b *Builder) Wire(f *font.Font) error {
	b.eblc, _ = f.Builder(font.TagEBLC).(*eblc.Builder)
	return nil
}

// GlyphBitmap returns the raw bytes of glyphID's bitmap image at the
// given strike (identified by its index into EBLC's bitmapSizeTable),
// prefixed by EBLC's imageFormat for the subtable it came from.
func (b *Builder) GlyphBitmap(sizeIndex int, glyphID uint16) (imageFormat uint16, data []byte, err error) {
	if b.eblc == nil {
		return 0, nil, &font.CorruptTableError{Tag: font.TagEBDT, Reason: "ebdt requires eblc to be wired"}
	}
	img, err := b.eblc.Lookup(sizeIndex, glyphID)
	if err != nil {
		return 0, nil, err
	}
	if img.Offset < 0 {
		return img.ImageFormat, nil, nil
	}
	d := b.Backing()
	if d == nil {
		return 0, nil, &font.CorruptTableError{Tag: font.TagEBDT, Reason: "ebdt table has no backing bytes"}
	}
	sliced, err := d.Slice(int(img.Offset), int(img.Length))
	if err != nil {
		return 0, nil, &font.OutOfBoundsError{Tag: font.TagEBDT, Err: err}
	}
	return img.ImageFormat, sliced.Bytes(), nil
}
