package font

import (
	"io"

	"github.com/naturezhm/sfntly/data"
)

// checkSumAdjustmentMagic is the constant from the sfnt spec such that
// checkSumAdjustment + wholeFontChecksum == this value, modulo 2^32.
const checkSumAdjustmentMagic uint32 = 0xB1B0AFBA

// headCheckSumAdjustmentOffset is the fixed byte offset of the
// checkSumAdjustment field within the "head" table, a format constant
// rather than a detail owned by the table/head package.
const headCheckSumAdjustmentOffset = 8

func align4(n int) int { return (n + 3) &^ 3 }

// Serialize writes f to w: the offset table, the table directory (with
// offsets patched after body layout), and each table's body padded to a
// 4-byte boundary. If f contains a "head" table, checkSumAdjustment is
// zeroed during whole-font checksum computation and then set so that
// checkSumAdjustment + wholeFontChecksum == 0xB1B0AFBA.
func (f *Font) Serialize(w io.Writer) error {
	buf, err := f.SerializeBytes()
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// SerializeBytes is Serialize's in-memory form, used directly by tests and
// by callers that need the bytes (e.g. to checksum them before writing).
func (f *Font) SerializeBytes() ([]byte, error) {
	numTables := len(f.order)
	headerSize := 12 + 16*numTables

	type laidOut struct {
		tag    Tag
		offset int
		length int
	}
	plan := make([]laidOut, 0, numTables)
	offset := headerSize
	for _, tag := range f.order {
		b := f.builders[tag]
		if !b.SubReadyToSerialize() {
			return nil, &NotReadyForSerializationError{Tag: tag}
		}
		size := b.SubDataSizeToSerialize()
		plan = append(plan, laidOut{tag: tag, offset: offset, length: size})
		offset += align4(size)
	}
	total := offset

	out := make([]byte, total)
	fd := data.NewWritable(out)

	searchRange, entrySelector, rangeShift := binarySearchParams(numTables, 16)
	_, _ = fd.WriteULong(0, f.sfntVersion)
	_, _ = fd.WriteUShort(4, uint16(numTables))
	_, _ = fd.WriteUShort(6, uint16(searchRange))
	_, _ = fd.WriteUShort(8, uint16(entrySelector))
	_, _ = fd.WriteUShort(10, uint16(rangeShift))

	var headOffset = -1
	for i, p := range plan {
		b := f.builders[p.tag]
		view, err := fd.Slice(p.offset, align4(p.length))
		if err != nil {
			return nil, err
		}
		if _, err := b.SubSerialize(view); err != nil {
			return nil, err
		}
		if p.tag == TagHead {
			headOffset = p.offset
		}

		rec := 12 + 16*i
		_, _ = fd.WriteULong(rec, p.tag.Uint32())
		_, _ = fd.WriteULong(rec+8, uint32(p.offset))
		_, _ = fd.WriteULong(rec+12, uint32(p.length))
		// checksum is patched below, once checkSumAdjustment (if any) is zeroed.
	}

	if headOffset >= 0 {
		_, _ = fd.WriteULong(headOffset+headCheckSumAdjustmentOffset, 0)
	}

	for i, p := range plan {
		tableView, err := fd.Slice(p.offset, p.length)
		if err != nil {
			return nil, err
		}
		rec := 12 + 16*i
		_, _ = fd.WriteULong(rec+4, tableView.Checksum())
	}

	if headOffset >= 0 {
		whole := data.NewReadable(out).Checksum()
		adjustment := checkSumAdjustmentMagic - whole
		_, _ = fd.WriteULong(headOffset+headCheckSumAdjustmentOffset, adjustment)
	}

	return out, nil
}

// binarySearchParams computes the searchRange/entrySelector/rangeShift
// acceleration fields the sfnt directory (and cmap format 4) both use:
// searchRange = entrySize * 2^floor(log2(count)), entrySelector =
// floor(log2(count)), rangeShift = entrySize*count - searchRange.
func binarySearchParams(count, entrySize int) (searchRange, entrySelector, rangeShift int) {
	entrySelector = 0
	for (1 << (entrySelector + 1)) <= count {
		entrySelector++
	}
	searchRange = entrySize * (1 << entrySelector)
	rangeShift = entrySize*count - searchRange
	return
}

// BinarySearchParams exposes binarySearchParams for table packages (e.g.
// cmap format 4) that need the identical acceleration-field formula.
func BinarySearchParams(count, entrySize int) (searchRange, entrySelector, rangeShift int) {
	return binarySearchParams(count, entrySize)
}
