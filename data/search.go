package data

// SearchUShort performs a binary search over two parallel sorted arrays of
// 16-bit start/end values and returns the index i of the range
// [start(i), end(i)] (inclusive) containing key, or -1 if no range
// contains it.
//
// start(i) is the value at startOffset+i*startStride; end(i) is the value
// at endOffset+i*endStride. The caller must ensure end values are
// non-decreasing in i; this is the invariant every cmap/EBLC table with a
// search-acceleration header is required to uphold.
func (fd *FontData) SearchUShort(startOffset, startStride, endOffset, endStride, count int, key uint16) int {
	lo, hi := 0, count-1
	for lo <= hi {
		mid := (lo + hi) / 2
		end, err := fd.UShort(endOffset + mid*endStride)
		if err != nil {
			return -1
		}
		if key > end {
			lo = mid + 1
			continue
		}
		start, err := fd.UShort(startOffset + mid*startStride)
		if err != nil {
			return -1
		}
		if key < start {
			hi = mid - 1
			continue
		}
		return mid
	}
	return -1
}

// SearchULong is the 32-bit analogue of SearchUShort.
func (fd *FontData) SearchULong(startOffset, startStride, endOffset, endStride, count int, key uint32) int {
	lo, hi := 0, count-1
	for lo <= hi {
		mid := (lo + hi) / 2
		end, err := fd.ULong(endOffset + mid*endStride)
		if err != nil {
			return -1
		}
		if key > end {
			lo = mid + 1
			continue
		}
		start, err := fd.ULong(startOffset + mid*startStride)
		if err != nil {
			return -1
		}
		if key < start {
			hi = mid - 1
			continue
		}
		return mid
	}
	return -1
}
