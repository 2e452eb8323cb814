package geometry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathBoundsAbsolute(t *testing.T) {
	r, err := PathBounds("M10,20 L30,40 H5 V50 Z")
	require.NoError(t, err)
	assert.Equal(t, Rect{MinX: 5, MinY: 20, MaxX: 30, MaxY: 50}, r)
}

func TestPathBoundsRelative(t *testing.T) {
	r, err := PathBounds("m10 10 l10 0 0 10 -10 0z")
	require.NoError(t, err)
	assert.Equal(t, Rect{MinX: 10, MinY: 10, MaxX: 20, MaxY: 20}, r)
}

func TestPathBoundsCurvesAndCompactNumbers(t *testing.T) {
	r, err := PathBounds("M0 0C-5-5 15-5 10 0q5 5 0 10s-10 0-10-10")
	require.NoError(t, err)
	assert.Equal(t, -5.0, r.MinX)
	assert.Equal(t, -5.0, r.MinY)
	assert.Equal(t, 15.0, r.MaxX)
	assert.Equal(t, 10.0, r.MaxY)

	r, err = PathBounds("M1e1,.5L-.5.5")
	require.NoError(t, err)
	assert.Equal(t, Rect{MinX: -0.5, MinY: 0.5, MaxX: 10, MaxY: 0.5}, r)
}

func assertRect(t *testing.T, want, got Rect) {
	t.Helper()
	assert.InDelta(t, want.MinX, got.MinX, 1e-9, "MinX")
	assert.InDelta(t, want.MinY, got.MinY, 1e-9, "MinY")
	assert.InDelta(t, want.MaxX, got.MaxX, 1e-9, "MaxX")
	assert.InDelta(t, want.MaxY, got.MaxY, 1e-9, "MaxY")
}

func TestPathBoundsArcs(t *testing.T) {
	cases := []struct {
		d    string
		want Rect
	}{
		// Half circles bulge above or below the chord depending on sweep.
		{"M0 0 A5 5 0 0 1 10 0", Rect{MinX: 0, MinY: -5, MaxX: 10, MaxY: 0}},
		{"M0 0 A5 5 0 0 0 10 0", Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 5}},
		// Flags packed against each other and the next number.
		{"M0 0 a5 5 0 1110 0", Rect{MinX: 0, MinY: -5, MaxX: 10, MaxY: 0}},
		{"M0,0a5,5,0,0,0,10,0", Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 5}},
		// Radii too small for the chord are scaled up.
		{"M0 0 A1 1 0 0 1 10 0", Rect{MinX: 0, MinY: -5, MaxX: 10, MaxY: 0}},
		// Quarter and three quarter circles.
		{"M10 0 A10 10 0 0 1 0 10", Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}},
		{"M10 0 A10 10 0 1 1 0 10", Rect{MinX: 0, MinY: 0, MaxX: 20, MaxY: 20}},
		// Zero radius is a straight line.
		{"M0 0 A0 5 0 0 1 10 4", Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 4}},
	}
	for _, c := range cases {
		r, err := PathBounds(c.d)
		if assert.NoError(t, err, c.d) {
			assertRect(t, c.want, r)
		}
	}
}

func TestPathBoundsBadArcFlag(t *testing.T) {
	_, err := PathBounds("M0 0 A5 5 0 2 1 10 0")
	assert.Error(t, err)
}

func TestPathBoundsErrors(t *testing.T) {
	for _, d := range []string{"", "   ", "10 10", "M10", "M0 0 X5 5", "M0 0 Z 5 5"} {
		_, err := PathBounds(d)
		assert.Error(t, err, "path %q", d)
	}
}

func TestRectCenter(t *testing.T) {
	x, y := Rect{MinX: 0, MinY: 10, MaxX: 20, MaxY: 30}.Center()
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)
}

func TestShapeBBoxEmpty(t *testing.T) {
	_, err := Shape{ID: "x"}.BBox()
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestLoad(t *testing.T) {
	doc := `<svg viewBox="0 0 100 50">
		<path id="a" data-state="Alpha" d="M0 0 L10 10"/>
		<path id="b" data-state="Beta" d="M20 20 L30 30"/>
		<path id="dup" data-state="Alpha" d="M90 90 L95 95"/>
		<path id="decor" d="M0 0 L1 1"/>
	</svg>`
	m, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 50}, m.ViewBox)
	assert.Equal(t, "0 0 100 50", m.ViewBoxAttr())
	require.Len(t, m.Shapes, 2)
	assert.Equal(t, "a", m.Shapes[0].ID)

	s, ok := m.Shape("Beta")
	require.True(t, ok)
	r, err := s.BBox()
	require.NoError(t, err)
	assert.Equal(t, Rect{MinX: 20, MinY: 20, MaxX: 30, MaxY: 30}, r)
}

func TestLoadRejectsMissingViewBox(t *testing.T) {
	_, err := Load(strings.NewReader(`<svg><path data-state="A" d="M0 0 L1 1"/></svg>`))
	assert.Error(t, err)
}

func TestNigeria(t *testing.T) {
	m, err := Nigeria()
	require.NoError(t, err)
	assert.Len(t, m.Shapes, 37)

	for _, s := range m.Shapes {
		r, err := s.BBox()
		if assert.NoError(t, err, s.State) {
			assert.True(t, r.MinX >= m.ViewBox.MinX && r.MaxX <= m.ViewBox.MaxX, "%s inside viewBox", s.State)
			assert.True(t, r.MinY >= m.ViewBox.MinY && r.MaxY <= m.ViewBox.MaxY, "%s inside viewBox", s.State)
		}
	}
	_, ok := m.Shape("Lagos")
	assert.True(t, ok)
}
