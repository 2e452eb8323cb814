// Package geometry loads the pre-baked state outlines and measures them.
package geometry

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/intelligrit/salesmap/internal/model"
)

//go:embed assets/nigeria.svg
var nigeriaSVG []byte

// Shape is one state's outline.
type Shape struct {
	ID    string      `json:"id"`
	State model.State `json:"state"`
	D     string      `json:"d"`
}

// BBox measures the outline. It fails for shapes whose path data is missing
// or malformed; callers treat that as "not laid out".
func (s Shape) BBox() (Rect, error) {
	if strings.TrimSpace(s.D) == "" {
		return Rect{}, fmt.Errorf("shape %s: %w", s.ID, ErrEmptyPath)
	}
	r, err := PathBounds(s.D)
	if err != nil {
		return Rect{}, fmt.Errorf("shape %s: %w", s.ID, err)
	}
	return r, nil
}

// Map is the full vector asset: a viewBox and shapes in document order.
type Map struct {
	ViewBox Rect
	Shapes  []Shape
}

// ViewBoxAttr formats the viewBox for an svg element.
func (m *Map) ViewBoxAttr() string {
	return fmt.Sprintf("%g %g %g %g", m.ViewBox.MinX, m.ViewBox.MinY, m.ViewBox.Width(), m.ViewBox.Height())
}

// Shape returns the outline for state.
func (m *Map) Shape(state model.State) (Shape, bool) {
	for _, s := range m.Shapes {
		if s.State == state {
			return s, true
		}
	}
	return Shape{}, false
}

// Nigeria returns the embedded state map.
func Nigeria() (*Map, error) {
	return Load(bytes.NewReader(nigeriaSVG))
}

// Load parses an SVG document with one <path data-state="…" d="…"> per state.
func Load(r io.Reader) (*Map, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing map SVG: %w", err)
	}
	return Parse(doc)
}

// Parse extracts the viewBox and state paths from a goquery document.
func Parse(doc *goquery.Document) (*Map, error) {
	svg := doc.Find("svg").First()
	if svg.Length() == 0 {
		return nil, fmt.Errorf("map SVG has no <svg> element")
	}

	vb, ok := svg.Attr("viewBox")
	if !ok {
		vb, ok = svg.Attr("viewbox")
	}
	if !ok {
		return nil, fmt.Errorf("map SVG has no viewBox")
	}
	box, err := parseViewBox(vb)
	if err != nil {
		return nil, err
	}

	m := &Map{ViewBox: box}
	seen := make(map[model.State]bool)
	svg.Find("path").Each(func(_ int, p *goquery.Selection) {
		state := strings.TrimSpace(p.AttrOr("data-state", ""))
		if state == "" || seen[model.State(state)] {
			return
		}
		seen[model.State(state)] = true
		m.Shapes = append(m.Shapes, Shape{
			ID:    p.AttrOr("id", state),
			State: model.State(state),
			D:     p.AttrOr("d", ""),
		})
	})

	if len(m.Shapes) == 0 {
		return nil, fmt.Errorf("map SVG has no state paths")
	}
	return m, nil
}

func parseViewBox(s string) (Rect, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) != 4 {
		return Rect{}, fmt.Errorf("viewBox %q: want 4 numbers", s)
	}
	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Rect{}, fmt.Errorf("viewBox %q: %w", s, err)
		}
		v[i] = n
	}
	return Rect{MinX: v[0], MinY: v[1], MaxX: v[0] + v[2], MaxY: v[1] + v[3]}, nil
}
