package font

import "github.com/naturezhm/sfntly/data"

// Header is the directory-record metadata for a table: its tag, declared
// checksum, and its byte range within the font file.
type Header struct {
	Tag      Tag
	CheckSum uint32
	Offset   uint32
	Length   uint32
}

// Table is a pair (Header, FontData): the directory metadata plus the
// table's bytes in isolation, already sliced from the font file. View
// tables decode lazily from Data() on each access; model tables cache an
// in-memory representation but still expose the raw bytes they were
// constructed from (or last serialized to).
type Table interface {
	Header() Header
	Data() *data.FontData
}

// Builder is the generic state machine every concrete table follows:
// backing bytes are authoritative until a mutator calls SetModelChanged,
// after which the in-memory model is authoritative and the backing bytes
// are recomputed from scratch on serialization.
type Builder interface {
	Table
	Tag() Tag
	ModelChanged() bool
	SubReadyToSerialize() bool
	SubDataSizeToSerialize() int
	SubSerialize(w *data.FontData) (int, error)
	SubDataSet(d *data.FontData)
}

// BuilderFactory constructs a Builder for a table's tag from its backing
// bytes. Table packages register one via Register in an init() function;
// the font loader consults the registry so that font does not import any
// concrete table package (avoiding an import cycle).
type BuilderFactory func(tag Tag, header Header, d *data.FontData) (Builder, error)

var registry = map[Tag]BuilderFactory{}

// Register associates a BuilderFactory with a table tag. It is called from
// the init() function of each table package (table/cmap, table/glyf, ...).
// Registering the same tag twice panics, since it would silently shadow an
// existing decoder.
func Register(tag Tag, factory BuilderFactory) {
	if _, exists := registry[tag]; exists {
		panic("font: table already registered for tag " + tag.String())
	}
	registry[tag] = factory
}

func lookupFactory(tag Tag) (BuilderFactory, bool) {
	f, ok := registry[tag]
	return f, ok
}

// BuilderBase provides the bookkeeping every Builder embeds: the backing
// bytes (if any), the tag, and the modelChanged flag. Concrete builders
// embed BuilderBase and override SubDataSizeToSerialize/SubSerialize only
// for the modelChanged==true path; BuilderBase.PassthroughSize and
// PassthroughSerialize implement the modelChanged==false path uniformly.
type BuilderBase struct {
	tag          Tag
	backing      *data.FontData
	modelChanged bool
}

// NewBuilderBase initializes a BuilderBase for tag with its backing bytes,
// which may be nil for a table built from scratch.
func NewBuilderBase(tag Tag, backing *data.FontData) BuilderBase {
	return BuilderBase{tag: tag, backing: backing}
}

func (b *BuilderBase) Tag() Tag             { return b.tag }
func (b *BuilderBase) ModelChanged() bool   { return b.modelChanged }
func (b *BuilderBase) SetModelChanged()     { b.modelChanged = true }
func (b *BuilderBase) Backing() *data.FontData { return b.backing }

// SubDataSet replaces the backing bytes and invalidates modelChanged, since
// the new bytes are authoritative until a mutator runs again. Concrete
// builders that cache a decoded model must override this to also clear
// their cached model.
func (b *BuilderBase) SubDataSet(d *data.FontData) {
	b.backing = d
	b.modelChanged = false
}

// PassthroughSize returns the length of the backing bytes, or 0 if there
// are none. It implements subDataSizeToSerialize() for the
// modelChanged==false path.
func (b *BuilderBase) PassthroughSize() int {
	if b.backing == nil {
		return 0
	}
	return b.backing.Length()
}

// PassthroughSerialize copies the backing bytes verbatim into w. It
// implements subSerialize() for the modelChanged==false path.
func (b *BuilderBase) PassthroughSerialize(w *data.FontData) (int, error) {
	if b.backing == nil {
		return 0, nil
	}
	return w.WriteBytes(0, b.backing.Bytes())
}

// RawTable is the opaque, pass-through builder used for every table tag
// the loader does not recognize (or whose typed decoder rejects its
// bytes as corrupt): its bytes are preserved verbatim so that tools can
// still inspect and round-trip fonts with tables they don't understand.
type RawTable struct {
	BuilderBase
	header Header
}

func newRawTable(tag Tag, header Header, d *data.FontData) (Builder, error) {
	return &RawTable{BuilderBase: NewBuilderBase(tag, d), header: header}, nil
}

func (r *RawTable) Header() Header                       { return r.header }
func (r *RawTable) Data() *data.FontData                  { return r.Backing() }
func (r *RawTable) SubReadyToSerialize() bool             { return true }
func (r *RawTable) SubDataSizeToSerialize() int           { return r.PassthroughSize() }
func (r *RawTable) SubSerialize(w *data.FontData) (int, error) { return r.PassthroughSerialize(w) }
