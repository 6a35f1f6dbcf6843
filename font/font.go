package font

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("sfntcore.font")
}

// sfnt version tags recognized for the offset-table FontType field.
const (
	versionTrueType uint32 = 0x00010000
	versionOTTO     uint32 = 0x4F54544F // "OTTO"
	versionTrue     uint32 = 0x74727565 // "true"
)

// Font is a collection of tables, indexed by tag, loaded from or destined
// for a single sfnt offset table. Font has no mutators of its own, but it
// holds its table builders by reference: a builder obtained from Builder,
// or from a FontBuilder made by NewFontBuilderFrom, is the same value this
// Font serializes, so mutating it also changes this Font's output.
type Font struct {
	sfntVersion uint32
	order       []Tag // directory order, ascending by tag
	builders    map[Tag]Builder
}

// SfntVersion returns the raw sfnt-version field of the offset table.
func (f *Font) SfntVersion() uint32 { return f.sfntVersion }

// Table returns the table for tag, or nil if the font has none.
func (f *Font) Table(tag Tag) Table {
	b, ok := f.builders[tag]
	if !ok {
		return nil
	}
	return b
}

// Builder returns the mutable builder for tag, or nil if the font has none.
// It is the builder f itself holds, so mutating it changes what f
// serializes.
func (f *Font) Builder(tag Tag) Builder { return f.builders[tag] }

// Tables returns every table in directory (tag-ascending) order.
func (f *Font) Tables() []Table {
	out := make([]Table, 0, len(f.order))
	for _, tag := range f.order {
		out = append(out, f.builders[tag])
	}
	return out
}

// NumTables returns the number of tables in the font.
func (f *Font) NumTables() int { return len(f.order) }

// Options configure FontFactory.Load.
type Options struct {
	// StrictMode is stored on the factory, but no table decoder in this
	// module reads it: setting it does not change how any table is
	// decoded. The cmap format 4 check that the last segment ends at
	// 0xFFFF runs whether or not it is set, and a format 4 segment whose
	// idRangeOffset points outside the glyphIdArray is not flagged.
	StrictMode bool
	// MaxTables bounds the number of table directory entries accepted,
	// guarding against a crafted huge numTables causing excessive
	// allocation. Zero selects a conservative default.
	MaxTables int
}

func (o Options) maxTables() int {
	if o.MaxTables > 0 {
		return o.MaxTables
	}
	return 512
}

// FontFactory loads fonts from sfnt byte streams. It holds no state beyond
// its Options and is safe to reuse or share.
type FontFactory struct {
	Options Options
}

// NewFontFactory returns a FontFactory configured with opts.
func NewFontFactory(opts Options) *FontFactory {
	return &FontFactory{Options: opts}
}

// Load parses buf as a single sfnt font. Use LoadCollection for a ttc file.
func (ff *FontFactory) Load(buf []byte) (*Font, error) {
	fd := data.NewReadable(buf)
	return ff.loadAt(fd, 0)
}

// LoadCollection parses buf as a TrueType/OpenType collection (ttc) file,
// returning one Font per entry in the collection header. Table byte ranges
// shared between fonts (the same {offset,length} pair reachable from more
// than one directory) are decoded once and shared between the returned
// Fonts, mirroring how a single backing buffer is shared by FontData
// slices.
func (ff *FontFactory) LoadCollection(buf []byte) ([]*Font, error) {
	fd := data.NewReadable(buf)
	tag, err := fd.ULong(0)
	if err != nil {
		return nil, err
	}
	if Tag(tag) != MustTag("ttcf") {
		f, err := ff.loadAt(fd, 0)
		if err != nil {
			return nil, err
		}
		return []*Font{f}, nil
	}
	numFonts, err := fd.ULong(8)
	if err != nil {
		return nil, err
	}
	shared := map[uint64]Builder{}
	fonts := make([]*Font, 0, numFonts)
	for i := uint32(0); i < numFonts; i++ {
		off, err := fd.ULong(12 + 4*int(i))
		if err != nil {
			return nil, err
		}
		f, err := ff.loadAtShared(fd, int(off), shared)
		if err != nil {
			return nil, err
		}
		fonts = append(fonts, f)
	}
	return fonts, nil
}

func storageKey(offset, length uint32) uint64 {
	return uint64(offset)<<32 | uint64(length)
}

func (ff *FontFactory) loadAt(fd *data.FontData, offset int) (*Font, error) {
	return ff.loadAtShared(fd, offset, map[uint64]Builder{})
}

func (ff *FontFactory) loadAtShared(fd *data.FontData, offset int, shared map[uint64]Builder) (*Font, error) {
	sfntVersion, err := fd.ULong(offset)
	if err != nil {
		return nil, err
	}
	if sfntVersion != versionTrueType && sfntVersion != versionOTTO && sfntVersion != versionTrue {
		return nil, &CorruptTableError{Reason: "unsupported sfnt version"}
	}
	numTables, err := fd.UShort(offset + 4)
	if err != nil {
		return nil, err
	}
	if int(numTables) > ff.Options.maxTables() {
		return nil, &CorruptTableError{Reason: "too many tables in directory"}
	}

	f := &Font{sfntVersion: sfntVersion, builders: make(map[Tag]Builder, numTables)}
	recBase := offset + 12
	var prevTag Tag
	for i := 0; i < int(numTables); i++ {
		rec := recBase + i*16
		rawTag, err := fd.ULong(rec)
		if err != nil {
			return nil, err
		}
		tag := TagFromUint32(rawTag)
		checksum, err := fd.ULong(rec + 4)
		if err != nil {
			return nil, err
		}
		tOffset, err := fd.ULong(rec + 8)
		if err != nil {
			return nil, err
		}
		tLength, err := fd.ULong(rec + 12)
		if err != nil {
			return nil, err
		}

		if i > 0 {
			if tag < prevTag {
				return nil, &UnsortedDirectoryError{Tag: tag, Prev: prevTag}
			}
			if tag == prevTag {
				return nil, &DuplicateTagError{Tag: tag}
			}
		}
		prevTag = tag

		header := Header{Tag: tag, CheckSum: checksum, Offset: tOffset, Length: tLength}
		key := storageKey(tOffset, tLength)
		if b, ok := shared[key]; ok {
			f.builders[tag] = b
			f.order = append(f.order, tag)
			continue
		}

		tableBytes, err := fd.Slice(int(tOffset), int(tLength))
		if err != nil {
			tracer().Infof("table %s range out of file bounds, rejecting font", tag)
			return nil, &OutOfBoundsError{Tag: tag, Err: err}
		}

		b, err := ff.buildTable(tag, header, tableBytes)
		if err != nil {
			tracer().Infof("table %s failed typed decode (%v), keeping raw", tag, err)
			b, _ = newRawTable(tag, header, tableBytes)
		}
		shared[key] = b
		f.builders[tag] = b
		f.order = append(f.order, tag)
	}
	for _, b := range f.builders {
		if w, ok := b.(Wirer); ok {
			if err := w.Wire(f); err != nil {
				tracer().Infof("table %s failed to wire cross-table dependencies: %v", b.Tag(), err)
			}
		}
	}
	return f, nil
}

// Wirer is implemented by a Builder whose model depends on another table's
// fields — for example "loca" needs head.IndexToLocFormat, and "glyf"
// needs "loca" itself. Wire is invoked once per Font, after every table's
// raw Builder has been constructed, and before the Font is handed to the
// caller. Implementations only record the sibling builders there; the
// siblings' models are decoded lazily, on the first access that needs
// them.
type Wirer interface {
	Wire(f *Font) error
}

func (ff *FontFactory) buildTable(tag Tag, header Header, d *data.FontData) (Builder, error) {
	factory, ok := lookupFactory(tag)
	if !ok {
		return newRawTable(tag, header, d)
	}
	return factory(tag, header, d)
}
