// Package font implements the top-level SFNT container: the table
// directory, the generic Table/Builder lifecycle every concrete table
// follows, and the Font/FontFactory entry points used to load and
// serialize a font.
package font

import "fmt"

// Tag is a 4-byte ASCII table identifier, interpreted as a big-endian
// uint32 (e.g. "cmap" == 0x636d6170).
type Tag uint32

// MustTag builds a Tag from a 4-character string. It panics if s is not
// exactly 4 bytes; use it only with string literals known at compile time.
func MustTag(s string) Tag {
	if len(s) != 4 {
		panic(fmt.Sprintf("font: tag %q is not 4 bytes", s))
	}
	return Tag(uint32(s[0])<<24 | uint32(s[1])<<16 | uint32(s[2])<<8 | uint32(s[3]))
}

// TagFromUint32 builds a Tag from its raw big-endian integer form, as
// stored in a table directory entry.
func TagFromUint32(v uint32) Tag { return Tag(v) }

// Uint32 returns the raw big-endian integer form of the tag.
func (t Tag) Uint32() uint32 { return uint32(t) }

// String renders the tag as its 4 ASCII characters, space-padded if a byte
// is zero.
func (t Tag) String() string {
	b := [4]byte{
		byte(t >> 24),
		byte(t >> 16),
		byte(t >> 8),
		byte(t),
	}
	for i, c := range b {
		if c == 0 {
			b[i] = ' '
		}
	}
	return string(b[:])
}

// Well-known table tags used by the core table subsystem.
var (
	TagCmap = MustTag("cmap")
	TagGlyf = MustTag("glyf")
	TagLoca = MustTag("loca")
	TagHead = MustTag("head")
	TagHhea = MustTag("hhea")
	TagHmtx = MustTag("hmtx")
	TagMaxp = MustTag("maxp")
	TagName = MustTag("name")
	TagOS2  = MustTag("OS/2")
	TagPost = MustTag("post")
	TagEBLC = MustTag("EBLC")
	TagEBDT = MustTag("EBDT")
	TagEBSC = MustTag("EBSC")
	TagGSUB = MustTag("GSUB")
	TagGPOS = MustTag("GPOS")
	TagGDEF = MustTag("GDEF")
)
