package font

import (
	"bytes"
	"testing"

	"github.com/naturezhm/sfntly/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSyntheticFont assembles a minimal, well-formed single-font sfnt
// buffer with two opaque tables, tags chosen below 'head' and 'loca' so
// that directory order is deterministic and easy to reason about.
func buildSyntheticFont(t *testing.T) []byte {
	t.Helper()
	type tbl struct {
		tag  string
		body []byte
	}
	tables := []tbl{
		{"aaaa", []byte{1, 2, 3, 4}},
		{"bbbb", []byte{5, 6, 7}}, // not a multiple of 4, exercises padding
	}
	numTables := len(tables)
	headerSize := 12 + 16*numTables
	offset := headerSize
	type rec struct {
		tag          string
		off, length int
	}
	var recs []rec
	bodies := make([][]byte, numTables)
	for i, tb := range tables {
		recs = append(recs, rec{tb.tag, offset, len(tb.body)})
		bodies[i] = tb.body
		offset += align4(len(tb.body))
	}
	buf := make([]byte, offset)
	put32 := func(o int, v uint32) {
		buf[o] = byte(v >> 24)
		buf[o+1] = byte(v >> 16)
		buf[o+2] = byte(v >> 8)
		buf[o+3] = byte(v)
	}
	put16 := func(o int, v uint16) {
		buf[o] = byte(v >> 8)
		buf[o+1] = byte(v)
	}
	put32(0, versionTrueType)
	put16(4, uint16(numTables))
	// Search fields for 2 tables of 16-byte records: searchRange 32,
	// entrySelector 1, rangeShift 0.
	put16(6, 32)
	put16(8, 1)
	put16(10, 0)
	for i, r := range recs {
		base := 12 + 16*i
		copy(buf[base:base+4], r.tag)
		copy(buf[r.off:], bodies[i])
		put32(base+8, uint32(r.off))
		put32(base+12, uint32(r.length))
		cs := newChecksumOf(bodies[i])
		put32(base+4, cs)
	}
	return buf
}

func newChecksumOf(body []byte) uint32 {
	var sum uint32
	n := len(body)
	full := n - n%4
	for i := 0; i < full; i += 4 {
		sum += uint32(body[i])<<24 | uint32(body[i+1])<<16 | uint32(body[i+2])<<8 | uint32(body[i+3])
	}
	if rem := n - full; rem > 0 {
		var last [4]byte
		copy(last[:], body[full:])
		sum += uint32(last[0])<<24 | uint32(last[1])<<16 | uint32(last[2])<<8 | uint32(last[3])
	}
	return sum
}

func TestLoadAndRoundTrip(t *testing.T) {
	orig := buildSyntheticFont(t)
	ff := NewFontFactory(Options{})
	f, err := ff.Load(orig)
	require.NoError(t, err)
	require.Equal(t, 2, f.NumTables())

	aTable := f.Table(MustTag("aaaa"))
	require.NotNil(t, aTable)
	assert.Equal(t, []byte{1, 2, 3, 4}, aTable.Data().Bytes())

	out, err := f.SerializeBytes()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(orig, out), "round trip must be byte-for-byte without edits")
}

func TestDuplicateTagRejected(t *testing.T) {
	buf := buildSyntheticFont(t)
	// Corrupt the second record's tag to duplicate the first.
	copy(buf[12+16:12+16+4], "aaaa")
	ff := NewFontFactory(Options{})
	_, err := ff.Load(buf)
	require.Error(t, err)
	var dupErr *DuplicateTagError
	require.ErrorAs(t, err, &dupErr)
}

func TestUnsortedDirectoryRejected(t *testing.T) {
	buf := buildSyntheticFont(t)
	// Swap the two directory records' tags, breaking sort order.
	a := make([]byte, 4)
	copy(a, buf[12:16])
	copy(buf[12:16], buf[28:32])
	copy(buf[28:32], a)
	ff := NewFontFactory(Options{})
	_, err := ff.Load(buf)
	require.Error(t, err)
	var unsortedErr *UnsortedDirectoryError
	require.ErrorAs(t, err, &unsortedErr)
}

func TestSerializeNotReady(t *testing.T) {
	fb := NewFontBuilder(versionTrueType)
	fb.SetTable(MustTag("zzzz"), &notReadyBuilder{BuilderBase: NewBuilderBase(MustTag("zzzz"), nil)})
	f := fb.Build()
	_, err := f.SerializeBytes()
	require.Error(t, err)
	var notReady *NotReadyForSerializationError
	require.ErrorAs(t, err, &notReady)
}

type notReadyBuilder struct {
	BuilderBase
}

func (n *notReadyBuilder) Header() Header            { return Header{Tag: n.Tag()} }
func (n *notReadyBuilder) Data() *data.FontData      { return nil }
func (n *notReadyBuilder) SubReadyToSerialize() bool { return false }
func (n *notReadyBuilder) SubDataSizeToSerialize() int { return 0 }
func (n *notReadyBuilder) SubSerialize(w *data.FontData) (int, error) { return 0, nil }

func TestChecksumAgreement(t *testing.T) {
	orig := buildSyntheticFont(t)
	ff := NewFontFactory(Options{})
	f, err := ff.Load(orig)
	require.NoError(t, err)
	for _, tag := range f.order {
		b := f.builders[tag]
		computed := b.Data().Checksum()
		// the declared checksum is the one read from the directory record
		h := b.Header()
		declared := h.CheckSum
		assert.Equal(t, declared, computed, "tag %s", tag)
	}
}
