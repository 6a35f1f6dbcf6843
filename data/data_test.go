package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteRoundTrip(t *testing.T) {
	buf := make([]byte, 32)
	fd := NewWritable(buf)

	n, err := fd.WriteUShort(0, 0xBEEF)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	v, err := fd.UShort(0)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), v)

	_, err = fd.WriteULong(4, 0xDEADBEEF)
	require.NoError(t, err)
	u, err := fd.ULong(4)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u)

	_, err = fd.WriteLongDateTime(8, -12345)
	require.NoError(t, err)
	lt, err := fd.LongDateTime(8)
	require.NoError(t, err)
	assert.Equal(t, int64(-12345), lt)
}

func TestULongAsIntRejectsTopBit(t *testing.T) {
	fd := NewWritable(make([]byte, 4))
	_, err := fd.WriteULong(0, 0x80000000)
	require.NoError(t, err)
	_, err = fd.ULongAsInt(0)
	require.Error(t, err)
	var rangeErr *OutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
}

func TestOutOfBounds(t *testing.T) {
	fd := NewReadable(make([]byte, 4))
	_, err := fd.UShort(3)
	require.Error(t, err)
	var boundsErr *OutOfBoundsError
	require.ErrorAs(t, err, &boundsErr)
}

func TestSliceTransitivity(t *testing.T) {
	buf := make([]byte, 64)
	for i := range buf {
		buf[i] = byte(i)
	}
	fd := NewReadable(buf)

	for _, c := range []struct{ a, n, b, m int }{
		{0, 64, 0, 64},
		{4, 40, 10, 20},
		{2, 10, 3, 5},
	} {
		direct, err := fd.Slice(c.a+c.b, c.m)
		require.NoError(t, err)
		outer, err := fd.Slice(c.a, c.n)
		require.NoError(t, err)
		inner, err := outer.Slice(c.b, c.m)
		require.NoError(t, err)
		assert.Equal(t, direct.Bytes(), inner.Bytes())
	}
}

func TestSliceOutOfBounds(t *testing.T) {
	fd := NewReadable(make([]byte, 10))
	_, err := fd.Slice(5, 10)
	require.Error(t, err)
}

func TestChecksum(t *testing.T) {
	cases := []struct {
		body []byte
		want uint32
	}{
		{[]byte{0, 1, 2, 3}, 0x00010203},
		{[]byte{0, 1, 2, 3, 4, 5, 6, 7}, 0x0406080a},
		{[]byte{1}, 0x01000000},
		{[]byte{1, 2, 3}, 0x01020300},
		{[]byte{1, 0, 0, 0, 1}, 0x02000000},
		{[]byte{255, 255, 255, 255, 0, 0, 0, 1}, 0},
	}
	for i, c := range cases {
		got := NewReadable(c.body).Checksum()
		assert.Equalf(t, c.want, got, "case %d", i+1)
	}
}

func TestSearchUShort(t *testing.T) {
	starts := []uint16{0, 10, 20, 50}
	ends := []uint16{5, 15, 30, 70}
	buf := make([]byte, 0, 16)
	for _, v := range starts {
		buf = append(buf, byte(v>>8), byte(v))
	}
	for _, v := range ends {
		buf = append(buf, byte(v>>8), byte(v))
	}
	fd := NewReadable(buf)
	startOffset, endOffset := 0, 8

	cases := []struct {
		key  uint16
		want int
	}{
		{25, 2},
		{7, -1},
		{100, -1},
		{10, 1},
		{15, 1},
		{0, 0},
		{70, 3},
	}
	for _, c := range cases {
		got := fd.SearchUShort(startOffset, 2, endOffset, 2, len(starts), c.key)
		assert.Equalf(t, c.want, got, "key %d", c.key)
	}
}
