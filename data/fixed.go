package data

import "golang.org/x/image/math/fixed"

// ToFixed26_6 converts a 16.16 fixed-point value (as returned by Fixed)
// to the 26.6 fixed-point representation golang.org/x/image/font/sfnt and
// its rasterizers consume, for callers that feed a decoded metric
// straight into that ecosystem's scan converter.
func ToFixed26_6(v int32) fixed.Int26_6 {
	return fixed.Int26_6(int64(v) >> 10)
}

// F2Dot14ToFixed26_6 converts a 2.14 fixed-point value (as returned by
// F2Dot14) to 26.6 fixed point.
func F2Dot14ToFixed26_6(v int16) fixed.Int26_6 {
	return fixed.Int26_6((int64(v) * 64) >> 14)
}
