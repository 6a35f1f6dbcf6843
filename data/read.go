package data

// UByte reads an unsigned 8-bit value at offset.
func (fd *FontData) UByte(offset int) (byte, error) {
	if err := fd.checkBounds("UByte", offset, 1); err != nil {
		return 0, err
	}
	return fd.buf[offset], nil
}

// Byte reads a signed 8-bit value at offset.
func (fd *FontData) Byte(offset int) (int8, error) {
	b, err := fd.UByte(offset)
	return int8(b), err
}

// UShort reads a big-endian unsigned 16-bit value at offset.
func (fd *FontData) UShort(offset int) (uint16, error) {
	if err := fd.checkBounds("UShort", offset, 2); err != nil {
		return 0, err
	}
	return uint16(fd.buf[offset])<<8 | uint16(fd.buf[offset+1]), nil
}

// Short reads a big-endian signed 16-bit value at offset, sign-extended.
func (fd *FontData) Short(offset int) (int16, error) {
	v, err := fd.UShort(offset)
	return int16(v), err
}

// UInt24 reads a big-endian unsigned 24-bit value at offset.
func (fd *FontData) UInt24(offset int) (uint32, error) {
	if err := fd.checkBounds("UInt24", offset, 3); err != nil {
		return 0, err
	}
	return uint32(fd.buf[offset])<<16 | uint32(fd.buf[offset+1])<<8 | uint32(fd.buf[offset+2]), nil
}

// ULong reads a big-endian unsigned 32-bit value at offset.
func (fd *FontData) ULong(offset int) (uint32, error) {
	if err := fd.checkBounds("ULong", offset, 4); err != nil {
		return 0, err
	}
	b := fd.buf[offset : offset+4]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// Long reads a big-endian signed 32-bit value at offset, sign-extended.
func (fd *FontData) Long(offset int) (int32, error) {
	v, err := fd.ULong(offset)
	return int32(v), err
}

// ULongAsInt reads a big-endian unsigned 32-bit value and returns it as a
// signed host int. It fails with *OutOfRangeError if the top bit is set,
// since the value would not fit into a signed 32-bit integer.
func (fd *FontData) ULongAsInt(offset int) (int, error) {
	v, err := fd.ULong(offset)
	if err != nil {
		return 0, err
	}
	if v > 0x7FFFFFFF {
		return 0, &OutOfRangeError{Value: v}
	}
	return int(v), nil
}

// Fixed reads a 16.16 fixed-point value at offset, returned as its raw
// int32 representation. Use FixedToFloat64 to obtain a float64.
func (fd *FontData) Fixed(offset int) (int32, error) {
	return fd.Long(offset)
}

// FixedToFloat64 converts a raw 16.16 fixed-point value to float64.
func FixedToFloat64(v int32) float64 {
	return float64(v) / 65536.0
}

// F2Dot14 reads a 2.14 fixed-point value at offset and returns it as a
// float64.
func (fd *FontData) F2Dot14(offset int) (float64, error) {
	v, err := fd.Short(offset)
	if err != nil {
		return 0, err
	}
	return float64(v) / 16384.0, nil
}

// LongDateTime reads a signed 64-bit value at offset, representing seconds
// since 1904-01-01 00:00:00 UTC (the "longDateTime" type of the sfnt spec).
func (fd *FontData) LongDateTime(offset int) (int64, error) {
	if err := fd.checkBounds("LongDateTime", offset, 8); err != nil {
		return 0, err
	}
	b := fd.buf[offset : offset+8]
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return int64(v), nil
}

// Tag reads a 4-byte tag value at offset as a raw big-endian uint32.
func (fd *FontData) Tag(offset int) (uint32, error) {
	return fd.ULong(offset)
}
