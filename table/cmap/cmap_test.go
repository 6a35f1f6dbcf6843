package cmap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func put16(buf []byte, off int, v uint16) {
	buf[off] = byte(v >> 8)
	buf[off+1] = byte(v)
}

func put32(buf []byte, off int, v uint32) {
	buf[off] = byte(v >> 24)
	buf[off+1] = byte(v >> 16)
	buf[off+2] = byte(v >> 8)
	buf[off+3] = byte(v)
}

// buildFormat4 assembles a minimal well-formed format 4 subtable with two
// segments: one direct-delta segment [0x41,0x45] mapping 'A'..'E' to
// glyphs 10..14 via idDelta, and one indirect segment [0x100,0x102] using
// idRangeOffset into a trailing glyphIdArray, followed by the mandatory
// 0xFFFF sentinel segment.
func buildFormat4(t *testing.T) []byte {
	t.Helper()
	segCount := 3
	headerLen := 14
	arraysLen := segCount*2*4 + 2 // end,pad,start,delta,rangeOffset arrays
	glyphIdArrayLen := 3 * 2
	buf := make([]byte, headerLen+arraysLen+glyphIdArrayLen)
	put16(buf, 0, 4)
	put16(buf, 2, uint16(len(buf)))
	put16(buf, 6, uint16(segCount*2))

	endCodeOffset := 14
	startCodeOffset := endCodeOffset + segCount*2 + 2
	idDeltaOffset := startCodeOffset + segCount*2
	idRangeOffsetOffset := idDeltaOffset + segCount*2
	glyphIdArrayOffset := idRangeOffsetOffset + segCount*2

	// segment 0: 0x41-0x45, direct delta of 10-0x41
	put16(buf, endCodeOffset+0*2, 0x45)
	put16(buf, startCodeOffset+0*2, 0x41)
	put16(buf, idDeltaOffset+0*2, uint16(int16(10-0x41)))
	put16(buf, idRangeOffsetOffset+0*2, 0)

	// segment 1: 0x100-0x102, indirect via glyphIdArray {20,0,22}
	put16(buf, endCodeOffset+1*2, 0x102)
	put16(buf, startCodeOffset+1*2, 0x100)
	put16(buf, idDeltaOffset+1*2, 0)
	rangeOffsetFieldAt := idRangeOffsetOffset + 1*2
	put16(buf, rangeOffsetFieldAt, uint16(glyphIdArrayOffset-rangeOffsetFieldAt))
	put16(buf, glyphIdArrayOffset+0, 20)
	put16(buf, glyphIdArrayOffset+2, 0)
	put16(buf, glyphIdArrayOffset+4, 22)

	// sentinel segment
	put16(buf, endCodeOffset+2*2, 0xFFFF)
	put16(buf, startCodeOffset+2*2, 0xFFFF)
	put16(buf, idDeltaOffset+2*2, 1)
	put16(buf, idRangeOffsetOffset+2*2, 0)

	return buf
}

func TestFormat4DirectAndIndirectLookup(t *testing.T) {
	buf := buildFormat4(t)
	d := data.NewReadable(buf)
	f4, err := decodeFormat4(d)
	require.NoError(t, err)

	assert.EqualValues(t, 10, f4.GlyphIndex('A'))
	assert.EqualValues(t, 14, f4.GlyphIndex('E'))
	assert.EqualValues(t, 20, f4.GlyphIndex(0x100))
	assert.EqualValues(t, 0, f4.GlyphIndex(0x101), "middle glyphIdArray entry is 0 (.notdef)")
	assert.EqualValues(t, 22, f4.GlyphIndex(0x102))
	assert.EqualValues(t, 0, f4.GlyphIndex(0x200), "uncovered code point maps to .notdef")
}

func TestFormat4RejectsMissingSentinel(t *testing.T) {
	buf := buildFormat4(t)
	// Corrupt the sentinel segment's endCode so it is no longer 0xFFFF.
	put16(buf, 14+2*2, 0x103)
	d := data.NewReadable(buf)
	_, err := decodeFormat4(d)
	require.Error(t, err)
	var corrupt *font.CorruptTableError
	require.ErrorAs(t, err, &corrupt)
}

// buildFormat12Or13 builds a two-group format 12/13 subtable: group 0
// covers [10,12] starting at glyph 100, group 1 covers [20,21] starting
// at glyph 200.
func buildFormat12Or13(t *testing.T) []byte {
	t.Helper()
	numGroups := 2
	buf := make([]byte, 16+numGroups*12)
	put16(buf, 0, 12)
	put32(buf, 4, uint32(len(buf)))
	put32(buf, 12, uint32(numGroups))
	put32(buf, 16+0*12+0, 10)
	put32(buf, 16+0*12+4, 12)
	put32(buf, 16+0*12+8, 100)
	put32(buf, 16+1*12+0, 20)
	put32(buf, 16+1*12+4, 21)
	put32(buf, 16+1*12+8, 200)
	return buf
}

func TestFormat12AdvancesGlyphWithOffset(t *testing.T) {
	buf := buildFormat12Or13(t)
	d := data.NewReadable(buf)
	f12, err := decodeFormat12or13(d, false)
	require.NoError(t, err)
	assert.EqualValues(t, 100, f12.GlyphIndex(10))
	assert.EqualValues(t, 101, f12.GlyphIndex(11))
	assert.EqualValues(t, 102, f12.GlyphIndex(12))
	assert.EqualValues(t, 200, f12.GlyphIndex(20))
	assert.EqualValues(t, 201, f12.GlyphIndex(21))
	assert.EqualValues(t, 0, f12.GlyphIndex(13))
}

func TestFormat13ReturnsConstantGlyphPerGroup(t *testing.T) {
	buf := buildFormat12Or13(t)
	d := data.NewReadable(buf)
	f13, err := decodeFormat12or13(d, true)
	require.NoError(t, err)
	assert.EqualValues(t, 100, f13.GlyphIndex(10))
	assert.EqualValues(t, 100, f13.GlyphIndex(11))
	assert.EqualValues(t, 100, f13.GlyphIndex(12))
	assert.EqualValues(t, 200, f13.GlyphIndex(20))
	assert.EqualValues(t, 200, f13.GlyphIndex(21))
}

func TestPreferredSubtableOrder(t *testing.T) {
	// Build a directory with only a (0,3) and a (1,0) record; preferred
	// order should pick (0,3) since it ranks above (1,0)'s absence from
	// the preference list (falls through to first record only when none
	// of the preferred pairs are present).
	b := &Builder{
		records: []EncodingRecord{
			{PlatformID: 1, EncodingID: 0, Offset: 0},
			{PlatformID: 0, EncodingID: 3, Offset: 8},
		},
		// Only the (0,3) record's offset has a decoded subtable; the (1,0)
		// record resolves to nil because the builder has no backing bytes.
		subtables:  map[uint32]GlyphLookup{8: &stubLookup{}},
		decodeErrs: map[uint32]error{},
	}
	st, err := b.PreferredSubtable()
	require.NoError(t, err)
	assert.NotNil(t, st)
}

type stubLookup struct{}

func (stubLookup) GlyphIndex(c uint32) uint16 { return 0 }

func TestEncodingRecordsReturnsDefensiveCopy(t *testing.T) {
	want := []EncodingRecord{
		{PlatformID: 3, EncodingID: 1, Offset: 20},
		{PlatformID: 0, EncodingID: 4, Offset: 40},
	}
	b := &Builder{records: want}
	got := b.EncodingRecords()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EncodingRecords() mismatch (-want +got):\n%s", diff)
	}
	got[0].Offset = 999
	assert.EqualValues(t, 20, b.records[0].Offset, "mutating the returned slice must not alias internal state")
}
