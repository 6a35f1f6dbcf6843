package data

// WriteByte writes a signed 8-bit value at offset and returns bytes written.
func (fd *FontData) WriteByte(offset int, v int8) (int, error) {
	return fd.WriteUByte(offset, byte(v))
}

// WriteUByte writes an unsigned 8-bit value at offset.
func (fd *FontData) WriteUByte(offset int, v byte) (int, error) {
	if err := fd.checkBounds("WriteUByte", offset, 1); err != nil {
		return 0, err
	}
	fd.buf[offset] = v
	return 1, nil
}

// WriteShort writes a signed 16-bit big-endian value at offset.
func (fd *FontData) WriteShort(offset int, v int16) (int, error) {
	return fd.WriteUShort(offset, uint16(v))
}

// WriteUShort writes an unsigned 16-bit big-endian value at offset.
func (fd *FontData) WriteUShort(offset int, v uint16) (int, error) {
	if err := fd.checkBounds("WriteUShort", offset, 2); err != nil {
		return 0, err
	}
	fd.buf[offset] = byte(v >> 8)
	fd.buf[offset+1] = byte(v)
	return 2, nil
}

// WriteLong writes a signed 32-bit big-endian value at offset.
func (fd *FontData) WriteLong(offset int, v int32) (int, error) {
	return fd.WriteULong(offset, uint32(v))
}

// WriteULong writes an unsigned 32-bit big-endian value at offset.
func (fd *FontData) WriteULong(offset int, v uint32) (int, error) {
	if err := fd.checkBounds("WriteULong", offset, 4); err != nil {
		return 0, err
	}
	fd.buf[offset] = byte(v >> 24)
	fd.buf[offset+1] = byte(v >> 16)
	fd.buf[offset+2] = byte(v >> 8)
	fd.buf[offset+3] = byte(v)
	return 4, nil
}

// WriteFixed writes a 16.16 fixed-point value (as its raw int32
// representation) at offset.
func (fd *FontData) WriteFixed(offset int, v int32) (int, error) {
	return fd.WriteLong(offset, v)
}

// WriteLongDateTime writes a signed 64-bit value at offset.
func (fd *FontData) WriteLongDateTime(offset int, v int64) (int, error) {
	if err := fd.checkBounds("WriteLongDateTime", offset, 8); err != nil {
		return 0, err
	}
	u := uint64(v)
	for i := 7; i >= 0; i-- {
		fd.buf[offset+i] = byte(u)
		u >>= 8
	}
	return 8, nil
}

// WriteBytes copies src into the buffer starting at offset and returns the
// number of bytes written.
func (fd *FontData) WriteBytes(offset int, src []byte) (int, error) {
	if err := fd.checkBounds("WriteBytes", offset, len(src)); err != nil {
		return 0, err
	}
	return copy(fd.buf[offset:], src), nil
}
