// Package ebsc decodes the sfnt "EBSC" table: scaled bitmap strike
// metadata (a bitmapScale record pointing an absent strike at an
// existing one to be scaled). Real-world producers of this table are
// rare enough that materializing a typed model is not worth it; EBSC is
// kept as an explicit pass-through, preserving its bytes verbatim on
// every round-trip.
package ebsc

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
)

func init() {
	font.Register(font.TagEBSC, newBuilder)
}

// Builder is the pass-through builder for "EBSC".
type Builder struct {
	font.BuilderBase
	header font.Header
}

func newBuilder(tag font.Tag, header font.Header, d *data.FontData) (font.Builder, error) {
	return &Builder{BuilderBase: font.NewBuilderBase(tag, d), header: header}, nil
}

func (b *Builder) Header() font.Header                        { return b.header }
func (b *Builder) Data() *data.FontData                       { return b.Backing() }
func (b *Builder) SubReadyToSerialize() bool                  { return true }
func (b *Builder) SubDataSizeToSerialize() int                { return b.PassthroughSize() }
func (b *Builder) SubSerialize(w *data.FontData) (int, error) { return b.PassthroughSerialize(w) }
