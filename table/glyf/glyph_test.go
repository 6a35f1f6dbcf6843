package glyf

import (
	"testing"

	"github.com/naturezhm/sfntly/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleGlyphRoundTrip(t *testing.T) {
	s := &SimpleGlyph{
		XMin: -10, YMin: 0, XMax: 100, YMax: 200,
		EndPtsOfContours: []uint16{2},
		Points: []Point{
			{X: 0, Y: 0, OnCurve: true},
			{X: 50, Y: 100, OnCurve: false},
			{X: 100, Y: 0, OnCurve: true},
		},
	}
	buf := EncodeSimpleGlyph(s)
	d := data.NewReadable(buf)
	g, err := decodeGlyph(d)
	require.NoError(t, err)
	require.NotNil(t, g.Simple)
	assert.False(t, g.IsComposite())
	assert.False(t, g.IsEmpty())
	assert.Equal(t, s.XMin, g.Simple.XMin)
	assert.Equal(t, s.EndPtsOfContours, g.Simple.EndPtsOfContours)
	require.Len(t, g.Simple.Points, 3)
	for i, p := range s.Points {
		assert.Equal(t, p.X, g.Simple.Points[i].X, "point %d X", i)
		assert.Equal(t, p.Y, g.Simple.Points[i].Y, "point %d Y", i)
		assert.Equal(t, p.OnCurve, g.Simple.Points[i].OnCurve, "point %d OnCurve", i)
	}
}

func TestCompositeGlyphScaleFlagsRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		scale *Affine
		want  uint16
	}{
		{"no scale", nil, 0},
		{"uniform scale", &Affine{A: 1.5, D: 1.5}, weHaveAScale},
		{"x and y scale", &Affine{A: 1.5, D: 0.5}, weHaveXAndYScale},
		{"two by two", &Affine{A: 1, B: 0.25, C: -0.25, D: 1}, weHaveTwoByTwo},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			comp := &CompositeGlyph{
				XMin: 0, YMin: 0, XMax: 10, YMax: 10,
				Components: []Component{{GlyphIndex: 5, Arg1: 1, Arg2: 2, Scale: c.scale}},
			}
			buf := EncodeCompositeGlyph(comp)
			d := data.NewReadable(buf)
			g, err := decodeGlyph(d)
			require.NoError(t, err)
			require.NotNil(t, g.Composite)
			assert.True(t, g.IsComposite())
			require.Len(t, g.Composite.Components, 1)
			got := g.Composite.Components[0]
			assert.Equal(t, c.want, got.Flags&(weHaveAScale|weHaveXAndYScale|weHaveTwoByTwo))
			if c.scale == nil {
				assert.Nil(t, got.Scale)
				return
			}
			require.NotNil(t, got.Scale)
			assert.InDelta(t, c.scale.A, got.Scale.A, 1.0/16384)
			assert.InDelta(t, c.scale.B, got.Scale.B, 1.0/16384)
			assert.InDelta(t, c.scale.C, got.Scale.C, 1.0/16384)
			assert.InDelta(t, c.scale.D, got.Scale.D, 1.0/16384)
		})
	}
}

func TestMultiComponentMoreComponentsFlag(t *testing.T) {
	comp := &CompositeGlyph{
		Components: []Component{
			{GlyphIndex: 1, Arg1: 0, Arg2: 0},
			{GlyphIndex: 2, Arg1: 5, Arg2: 5},
		},
	}
	buf := EncodeCompositeGlyph(comp)
	d := data.NewReadable(buf)
	g, err := decodeGlyph(d)
	require.NoError(t, err)
	require.Len(t, g.Composite.Components, 2)
	assert.True(t, g.Composite.Components[0].HasMore())
	assert.False(t, g.Composite.Components[1].HasMore())
	assert.True(t, g.Composite.Components[0].ArgsArePoints())
}

func TestEmptyGlyphHasNoOutline(t *testing.T) {
	g := &Glyph{NumberOfContours: 0}
	assert.True(t, g.IsEmpty())
	assert.False(t, g.IsComposite())
}
