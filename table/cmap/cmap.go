// Package cmap decodes the sfnt "cmap" table: a list of character-to-glyph
// subtables, each keyed by a {platformID, encodingID} pair. Subtables are
// view tables decoded on demand — the table as a whole is never
// materialized into a single in-memory structure, only the individual
// subtable a caller asks to look up through.
package cmap

import (
	"sort"

	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
)

func init() {
	font.Register(font.TagCmap, newBuilder)
}

// EncodingRecord identifies one subtable's platform/encoding and its byte
// offset within the cmap table.
type EncodingRecord struct {
	PlatformID uint16
	EncodingID uint16
	Offset     uint32
}

// GlyphLookup is satisfied by every decoded cmap subtable format.
type GlyphLookup interface {
	// GlyphIndex returns the glyph id mapped to character code c, or 0
	// (.notdef) if c is not covered by the subtable.
	GlyphIndex(c uint32) uint16
}

// Range is an inclusive [Start, End] interval of character codes covered
// by a subtable, used by CharacterIterator.
type Range struct {
	Start, End uint32
}

// CharacterIterator is satisfied by cmap subtable formats that can report
// their coverage without a linear scan of the code space (formats 0, 4, 6,
// 8, 10, 12, 13); callers combine it with GlyphLookup to skip codes whose
// GlyphIndex is 0.
type CharacterIterator interface {
	Ranges() []Range
}

// Builder is the table-level "cmap" builder: a directory of encoding
// records plus lazily-decoded subtables.
type Builder struct {
	font.BuilderBase
	header     font.Header
	version    uint16
	records    []EncodingRecord
	subtables  map[uint32]GlyphLookup
	decodeErrs map[uint32]error
}

func newBuilder(tag font.Tag, header font.Header, d *data.FontData) (font.Builder, error) {
	b := &Builder{BuilderBase: font.NewBuilderBase(tag, d), header: header}
	if d != nil {
		if err := b.decodeDirectory(d); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Builder) Header() font.Header       { return b.header }
func (b *Builder) Data() *data.FontData      { return b.Backing() }
func (b *Builder) SubReadyToSerialize() bool { return true }

func (b *Builder) SubDataSet(d *data.FontData) {
	b.BuilderBase.SubDataSet(d)
	b.subtables = nil
	b.decodeErrs = nil
	b.records = nil
	if d != nil {
		_ = b.decodeDirectory(d)
	}
}

func (b *Builder) SubDataSizeToSerialize() int {
	return b.PassthroughSize()
}

func (b *Builder) SubSerialize(w *data.FontData) (int, error) {
	return b.PassthroughSerialize(w)
}

func (b *Builder) decodeDirectory(d *data.FontData) error {
	version, err := d.UShort(0)
	if err != nil {
		return &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
	}
	numTables, err := d.UShort(2)
	if err != nil {
		return &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
	}
	b.version = version
	b.records = make([]EncodingRecord, numTables)
	for i := 0; i < int(numTables); i++ {
		rec := 4 + i*8
		pid, err := d.UShort(rec)
		if err != nil {
			return &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
		}
		eid, err := d.UShort(rec + 2)
		if err != nil {
			return &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
		}
		off, err := d.ULong(rec + 4)
		if err != nil {
			return &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
		}
		b.records[i] = EncodingRecord{PlatformID: pid, EncodingID: eid, Offset: off}
	}
	return nil
}

// EncodingRecords returns the table's {platformID, encodingID, offset}
// directory, in on-disk order.
func (b *Builder) EncodingRecords() []EncodingRecord {
	out := make([]EncodingRecord, len(b.records))
	copy(out, b.records)
	return out
}

// Subtable decodes (and caches) the subtable for the given platform and
// encoding ID, or returns nil if the table declares no such record.
func (b *Builder) Subtable(platformID, encodingID uint16) (GlyphLookup, error) {
	for _, r := range b.records {
		if r.PlatformID == platformID && r.EncodingID == encodingID {
			return b.subtableAt(r.Offset)
		}
	}
	return nil, nil
}

// PreferredSubtable applies the usual Unicode-first preference order
// ({3,10}, {0,4}, {3,1}, {0,3}, {0,*}) and returns the first subtable
// found. If none of these is present it returns the subtable of the first
// encoding record, and nil only if the table has no records at all.
func (b *Builder) PreferredSubtable() (GlyphLookup, error) {
	prefs := [][2]uint16{{3, 10}, {0, 4}, {3, 1}, {0, 3}, {0, 6}, {0, 2}, {0, 1}, {0, 0}}
	for _, p := range prefs {
		if st, err := b.Subtable(p[0], p[1]); st != nil || err != nil {
			return st, err
		}
	}
	if len(b.records) > 0 {
		return b.subtableAt(b.records[0].Offset)
	}
	return nil, nil
}

func (b *Builder) subtableAt(offset uint32) (GlyphLookup, error) {
	if b.subtables == nil {
		b.subtables = map[uint32]GlyphLookup{}
		b.decodeErrs = map[uint32]error{}
	}
	if st, ok := b.subtables[offset]; ok {
		return st, nil
	}
	if err, ok := b.decodeErrs[offset]; ok {
		return nil, err
	}
	d := b.Backing()
	if d == nil {
		return nil, nil
	}
	sub, err := d.Slice(int(offset), d.Length()-int(offset))
	if err != nil {
		b.decodeErrs[offset] = err
		return nil, &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
	}
	format, err := sub.UShort(0)
	if err != nil {
		b.decodeErrs[offset] = err
		return nil, &font.OutOfBoundsError{Tag: font.TagCmap, Err: err}
	}
	st, err := decodeFormat(format, sub)
	if err != nil {
		b.decodeErrs[offset] = err
		return nil, err
	}
	b.subtables[offset] = st
	return st, nil
}

func decodeFormat(format uint16, d *data.FontData) (GlyphLookup, error) {
	switch format {
	case 0:
		return decodeFormat0(d)
	case 2:
		return decodeFormat2(d)
	case 4:
		return decodeFormat4(d)
	case 6:
		return decodeFormat6(d)
	case 8:
		return decodeFormat8(d)
	case 10:
		return decodeFormat10(d)
	case 12:
		return decodeFormat12or13(d, false)
	case 13:
		return decodeFormat12or13(d, true)
	case 14:
		return decodeFormat14(d)
	default:
		return nil, &font.UnknownFormatError{Tag: font.TagCmap, Format: format}
	}
}

// sortedRanges sorts Range values by Start (without merging them) for CharacterIterator
// implementations built from an unordered set of groups/segments.
func sortedRanges(rs []Range) []Range {
	sort.Slice(rs, func(i, j int) bool { return rs[i].Start < rs[j].Start })
	return rs
}
