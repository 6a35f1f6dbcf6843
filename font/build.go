package font

// FontBuilder is an editable builder tree over an existing Font (or a
// from-scratch font). Builders obtained from it may be mutated in place;
// Build returns a new Font holding the current set of table builders.
type FontBuilder struct {
	sfntVersion uint32
	order       []Tag
	builders    map[Tag]Builder
}

// NewFontBuilderFrom returns a FontBuilder seeded with f's tables and
// directory order. The directory is copied, so SetTable and RemoveTable do
// not affect f; the table builders are shared with f, not copied, so
// mutating a builder obtained from Table also changes f.
func NewFontBuilderFrom(f *Font) *FontBuilder {
	order := make([]Tag, len(f.order))
	copy(order, f.order)
	builders := make(map[Tag]Builder, len(f.builders))
	for tag, b := range f.builders {
		builders[tag] = b
	}
	return &FontBuilder{sfntVersion: f.sfntVersion, order: order, builders: builders}
}

// NewFontBuilder starts an empty FontBuilder for a from-scratch font of the
// given sfnt version (one of the versionXxx constants).
func NewFontBuilder(sfntVersion uint32) *FontBuilder {
	return &FontBuilder{sfntVersion: sfntVersion, builders: map[Tag]Builder{}}
}

// Table returns the builder for tag, or nil.
func (fb *FontBuilder) Table(tag Tag) Builder { return fb.builders[tag] }

// SetTable installs or replaces the builder for tag, inserting it into the
// directory order if it is new.
func (fb *FontBuilder) SetTable(tag Tag, b Builder) {
	if _, exists := fb.builders[tag]; !exists {
		fb.order = append(fb.order, tag)
		sortTags(fb.order)
	}
	fb.builders[tag] = b
}

// RemoveTable drops tag from the directory entirely.
func (fb *FontBuilder) RemoveTable(tag Tag) {
	delete(fb.builders, tag)
	for i, t := range fb.order {
		if t == tag {
			fb.order = append(fb.order[:i], fb.order[i+1:]...)
			break
		}
	}
}

func sortTags(tags []Tag) {
	for i := 1; i < len(tags); i++ {
		for j := i; j > 0 && tags[j] < tags[j-1]; j-- {
			tags[j], tags[j-1] = tags[j-1], tags[j]
		}
	}
}

// Build returns a new Font with a copy of the current directory order and
// the current table builders. The builders themselves are shared, not
// copied, so later mutations of them are visible through the returned
// Font as well. Build does not serialize; call Serialize on the result to
// obtain bytes.
func (fb *FontBuilder) Build() *Font {
	order := make([]Tag, len(fb.order))
	copy(order, fb.order)
	builders := make(map[Tag]Builder, len(fb.builders))
	for tag, b := range fb.builders {
		builders[tag] = b
	}
	return &Font{sfntVersion: fb.sfntVersion, order: order, builders: builders}
}
