package glyf

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
)

// Point is one outline point of a simple glyph.
type Point struct {
	X, Y    int16
	OnCurve bool
}

// SimpleGlyph is a glyph described directly by one or more closed
// contours of points.
type SimpleGlyph struct {
	XMin, YMin, XMax, YMax int16
	EndPtsOfContours       []uint16
	Instructions           []byte
	Points                 []Point
}

// Component flag bits (spec §4.5).
const (
	argsAreWords       = 0x0001
	argsAreXYValues    = 0x0002
	weHaveAScale       = 0x0008
	moreComponents     = 0x0020
	weHaveXAndYScale   = 0x0040
	weHaveTwoByTwo     = 0x0080
	weHaveInstructions = 0x0100
)

// Affine is a 2x2 linear transform applied to a composite component,
// stored in F2Dot14 fixed point on the wire.
type Affine struct {
	A, B, C, D float64
}

// Component is one sub-glyph reference inside a composite glyph.
type Component struct {
	Flags      uint16
	GlyphIndex uint16
	// Arg1/Arg2 are either point indices to match (ArgsArePoints) or an
	// XY offset (ArgsAreXYValues), per Flags&argsAreXYValues.
	Arg1, Arg2 int16
	Scale      *Affine
}

// ArgsArePoints reports whether Arg1/Arg2 are point indices rather than
// an XY offset.
func (c Component) ArgsArePoints() bool { return c.Flags&argsAreXYValues == 0 }

// HasMore reports whether another component follows this one.
func (c Component) HasMore() bool { return c.Flags&moreComponents != 0 }

// CompositeGlyph is a glyph assembled from transformed references to
// other glyphs.
type CompositeGlyph struct {
	XMin, YMin, XMax, YMax int16
	Components             []Component
	Instructions           []byte
}

// Glyph is a decoded glyf table entry. A zero-length entry (no outline,
// e.g. the space glyph) has NumberOfContours == 0 and both Simple and
// Composite nil.
type Glyph struct {
	NumberOfContours int16
	Simple           *SimpleGlyph
	Composite        *CompositeGlyph
}

// IsComposite reports whether the glyph is built from components.
func (g *Glyph) IsComposite() bool { return g.NumberOfContours < 0 }

// IsEmpty reports whether the glyph has no outline at all.
func (g *Glyph) IsEmpty() bool { return g.Simple == nil && g.Composite == nil }

func decodeGlyph(d *data.FontData) (*Glyph, error) {
	if d.Length() < 10 {
		return nil, &font.CorruptTableError{Tag: font.TagGlyf, Reason: "glyph header shorter than 10 bytes"}
	}
	nc, _ := d.Short(0)
	g := &Glyph{NumberOfContours: nc}
	xmin, _ := d.Short(2)
	ymin, _ := d.Short(4)
	xmax, _ := d.Short(6)
	ymax, _ := d.Short(8)
	if nc < 0 {
		comp, err := decodeComposite(d, xmin, ymin, xmax, ymax)
		if err != nil {
			return nil, err
		}
		g.Composite = comp
		return g, nil
	}
	simple, err := decodeSimple(d, int(nc), xmin, ymin, xmax, ymax)
	if err != nil {
		return nil, err
	}
	g.Simple = simple
	return g, nil
}

func decodeSimple(d *data.FontData, numContours int, xmin, ymin, xmax, ymax int16) (*SimpleGlyph, error) {
	s := &SimpleGlyph{XMin: xmin, YMin: ymin, XMax: xmax, YMax: ymax}
	off := 10
	s.EndPtsOfContours = make([]uint16, numContours)
	for i := 0; i < numContours; i++ {
		v, err := d.UShort(off)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagGlyf, Err: err}
		}
		s.EndPtsOfContours[i] = v
		off += 2
	}
	numPoints := 0
	if numContours > 0 {
		numPoints = int(s.EndPtsOfContours[numContours-1]) + 1
	}
	insLen, err := d.UShort(off)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagGlyf, Err: err}
	}
	off += 2
	if insLen > 0 {
		if off+int(insLen) > d.Length() {
			return nil, &font.CorruptTableError{Tag: font.TagGlyf, Reason: "instruction length exceeds glyph bounds"}
		}
		s.Instructions = make([]byte, insLen)
		copy(s.Instructions, d.Bytes()[off:off+int(insLen)])
	}
	off += int(insLen)

	const (
		flagOnCurve      = 0x01
		flagXShort       = 0x02
		flagYShort       = 0x04
		flagRepeat       = 0x08
		flagXSameOrPos   = 0x10
		flagYSameOrPos   = 0x20
	)
	flags := make([]byte, numPoints)
	for i := 0; i < numPoints; {
		fl, err := d.UByte(off)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagGlyf, Err: err}
		}
		off++
		flags[i] = fl
		i++
		if fl&flagRepeat != 0 {
			rep, err := d.UByte(off)
			if err != nil {
				return nil, &font.OutOfBoundsError{Tag: font.TagGlyf, Err: err}
			}
			off++
			for j := 0; j < int(rep) && i < numPoints; j++ {
				flags[i] = fl
				i++
			}
		}
	}
	s.Points = make([]Point, numPoints)
	x := int16(0)
	for i := 0; i < numPoints; i++ {
		fl := flags[i]
		switch {
		case fl&flagXShort != 0:
			v, err := d.UByte(off)
			if err != nil {
				return nil, &font.OutOfBoundsError{Tag: font.TagGlyf, Err: err}
			}
			off++
			if fl&flagXSameOrPos != 0 {
				x += int16(v)
			} else {
				x -= int16(v)
			}
		case fl&flagXSameOrPos == 0:
			v, err := d.Short(off)
			if err != nil {
				return nil, &font.OutOfBoundsError{Tag: font.TagGlyf, Err: err}
			}
			off += 2
			x += v
		}
		s.Points[i].X = x
		s.Points[i].OnCurve = fl&flagOnCurve != 0
	}
	y := int16(0)
	for i := 0; i < numPoints; i++ {
		fl := flags[i]
		switch {
		case fl&flagYShort != 0:
			v, err := d.UByte(off)
			if err != nil {
				return nil, &font.OutOfBoundsError{Tag: font.TagGlyf, Err: err}
			}
			off++
			if fl&flagYSameOrPos != 0 {
				y += int16(v)
			} else {
				y -= int16(v)
			}
		case fl&flagYSameOrPos == 0:
			v, err := d.Short(off)
			if err != nil {
				return nil, &font.OutOfBoundsError{Tag: font.TagGlyf, Err: err}
			}
			off += 2
			y += v
		}
		s.Points[i].Y = y
	}
	return s, nil
}

func decodeComposite(d *data.FontData, xmin, ymin, xmax, ymax int16) (*CompositeGlyph, error) {
	c := &CompositeGlyph{XMin: xmin, YMin: ymin, XMax: xmax, YMax: ymax}
	off := 10
	for {
		flags, err := d.UShort(off)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagGlyf, Err: err}
		}
		gi, err := d.UShort(off + 2)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagGlyf, Err: err}
		}
		off += 4
		comp := Component{Flags: flags, GlyphIndex: gi}
		if flags&argsAreWords != 0 {
			a1, _ := d.Short(off)
			a2, _ := d.Short(off + 2)
			comp.Arg1, comp.Arg2 = a1, a2
			off += 4
		} else {
			a1, _ := d.Byte(off)
			a2, _ := d.Byte(off + 1)
			comp.Arg1, comp.Arg2 = int16(a1), int16(a2)
			off += 2
		}
		switch {
		case flags&weHaveAScale != 0:
			v, _ := d.F2Dot14(off)
			comp.Scale = &Affine{A: v, D: v}
			off += 2
		case flags&weHaveXAndYScale != 0:
			a, _ := d.F2Dot14(off)
			dd, _ := d.F2Dot14(off + 2)
			comp.Scale = &Affine{A: a, D: dd}
			off += 4
		case flags&weHaveTwoByTwo != 0:
			a, _ := d.F2Dot14(off)
			b, _ := d.F2Dot14(off + 2)
			cc, _ := d.F2Dot14(off + 4)
			dd, _ := d.F2Dot14(off + 6)
			comp.Scale = &Affine{A: a, B: b, C: cc, D: dd}
			off += 8
		}
		c.Components = append(c.Components, comp)
		if flags&moreComponents == 0 {
			if flags&weHaveInstructions != 0 {
				insLen, err := d.UShort(off)
				if err == nil {
					off += 2
					if int(insLen) > 0 && off+int(insLen) <= d.Length() {
						c.Instructions = make([]byte, insLen)
						copy(c.Instructions, d.Bytes()[off:off+int(insLen)])
					}
				}
			}
			break
		}
	}
	return c, nil
}

// EncodeSimpleGlyph serializes a simple glyph back to its sfnt byte
// layout, for tools and tests that build synthetic glyf tables.
func EncodeSimpleGlyph(s *SimpleGlyph) []byte {
	numContours := len(s.EndPtsOfContours)
	buf := make([]byte, 10)
	putShort(buf, 0, int16(numContours))
	putShort(buf, 2, s.XMin)
	putShort(buf, 4, s.YMin)
	putShort(buf, 6, s.XMax)
	putShort(buf, 8, s.YMax)
	for _, e := range s.EndPtsOfContours {
		buf = appendUShort(buf, e)
	}
	buf = appendUShort(buf, uint16(len(s.Instructions)))
	buf = append(buf, s.Instructions...)

	flags := make([]byte, len(s.Points))
	for i, p := range s.Points {
		var fl byte
		if p.OnCurve {
			fl |= 0x01
		}
		flags[i] = fl
	}
	for _, fl := range flags {
		buf = append(buf, fl)
	}
	prev := int16(0)
	for i, p := range s.Points {
		dx := p.X - prev
		buf = appendShort(buf, dx)
		_ = i
		prev = p.X
	}
	prev = 0
	for _, p := range s.Points {
		dy := p.Y - prev
		buf = appendShort(buf, dy)
		prev = p.Y
	}
	return buf
}

// EncodeCompositeGlyph serializes a composite glyph back to its sfnt
// byte layout, for tools and tests that build synthetic glyf tables.
func EncodeCompositeGlyph(c *CompositeGlyph) []byte {
	buf := make([]byte, 10)
	putShort(buf, 0, -1)
	putShort(buf, 2, c.XMin)
	putShort(buf, 4, c.YMin)
	putShort(buf, 6, c.XMax)
	putShort(buf, 8, c.YMax)
	for i, comp := range c.Components {
		flags := comp.Flags&argsAreXYValues | argsAreWords
		if i == len(c.Components)-1 {
			if len(c.Instructions) > 0 {
				flags |= weHaveInstructions
			}
		} else {
			flags |= moreComponents
		}
		switch {
		case comp.Scale == nil:
		case comp.Scale.B == 0 && comp.Scale.C == 0 && comp.Scale.A == comp.Scale.D:
			flags |= weHaveAScale
		case comp.Scale.B == 0 && comp.Scale.C == 0:
			flags |= weHaveXAndYScale
		default:
			flags |= weHaveTwoByTwo
		}
		buf = appendUShort(buf, flags)
		buf = appendUShort(buf, comp.GlyphIndex)
		buf = appendShort(buf, comp.Arg1)
		buf = appendShort(buf, comp.Arg2)
		switch {
		case flags&weHaveAScale != 0:
			buf = appendF2Dot14(buf, comp.Scale.A)
		case flags&weHaveXAndYScale != 0:
			buf = appendF2Dot14(buf, comp.Scale.A)
			buf = appendF2Dot14(buf, comp.Scale.D)
		case flags&weHaveTwoByTwo != 0:
			buf = appendF2Dot14(buf, comp.Scale.A)
			buf = appendF2Dot14(buf, comp.Scale.B)
			buf = appendF2Dot14(buf, comp.Scale.C)
			buf = appendF2Dot14(buf, comp.Scale.D)
		}
	}
	if len(c.Instructions) > 0 {
		buf = appendUShort(buf, uint16(len(c.Instructions)))
		buf = append(buf, c.Instructions...)
	}
	return buf
}

func putShort(buf []byte, off int, v int16) {
	buf[off] = byte(v >> 8)
	buf[off+1] = byte(v)
}

func appendShort(buf []byte, v int16) []byte {
	return append(buf, byte(v>>8), byte(v))
}

func appendUShort(buf []byte, v uint16) []byte {
	return append(buf, byte(v>>8), byte(v))
}

func appendF2Dot14(buf []byte, v float64) []byte {
	return appendShort(buf, int16(v*16384))
}
