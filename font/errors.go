package font

import "fmt"

// OutOfBoundsError wraps a data.OutOfBoundsError surfaced at the table API
// boundary; it is fatal only for the in-flight operation.
type OutOfBoundsError struct {
	Tag Tag
	Err error
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("font: %s: out of bounds: %v", e.Tag, e.Err)
}

func (e *OutOfBoundsError) Unwrap() error { return e.Err }

// CorruptTableError reports a structural invariant violated while
// materializing a table's model, e.g. a cmap format 4 table whose last
// segment does not end at 0xFFFF, or a non-monotonic loca.
type CorruptTableError struct {
	Tag    Tag
	Reason string
}

func (e *CorruptTableError) Error() string {
	return fmt.Sprintf("font: %s: corrupt table: %s", e.Tag, e.Reason)
}

// UnknownFormatError reports a subtable format number not recognized by
// any registered decoder. The table is preserved as opaque bytes.
type UnknownFormatError struct {
	Tag    Tag
	Format uint16
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("font: %s: unknown subtable format %d", e.Tag, e.Format)
}

// NotReadyForSerializationError reports that a builder's invariants are not
// met for it to produce bytes.
type NotReadyForSerializationError struct {
	Tag Tag
}

func (e *NotReadyForSerializationError) Error() string {
	return fmt.Sprintf("font: %s: not ready for serialization", e.Tag)
}

// ChecksumMismatchError describes a table whose declared checksum differs
// from the one computed from its bytes. Neither loading nor serialization
// compares checksums, and no function in this module returns this error.
type ChecksumMismatchError struct {
	Tag      Tag
	Declared uint32
	Computed uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("font: %s: checksum mismatch: declared=%#08x computed=%#08x", e.Tag, e.Declared, e.Computed)
}

// DuplicateTagError reports a table directory with the same tag more than
// once, a violation the loader treats as fatal.
type DuplicateTagError struct{ Tag Tag }

func (e *DuplicateTagError) Error() string {
	return fmt.Sprintf("font: duplicate table tag %s in directory", e.Tag)
}

// UnsortedDirectoryError reports a table directory not sorted
// lexicographically by tag.
type UnsortedDirectoryError struct{ Tag, Prev Tag }

func (e *UnsortedDirectoryError) Error() string {
	return fmt.Sprintf("font: table directory not sorted: %s follows %s", e.Tag, e.Prev)
}
