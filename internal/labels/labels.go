// Package labels places state name labels on the rendered map. Placement is
// a post-layout pass: shapes are committed first, then measured.
package labels

import (
	"sort"

	"go.uber.org/zap"

	"github.com/intelligrit/salesmap/internal/geometry"
	"github.com/intelligrit/salesmap/internal/model"
)

// GeometryHandle is a laid-out shape that can be measured. BBox fails while
// the shape is not yet available.
type GeometryHandle interface {
	BBox() (geometry.Rect, error)
}

// Engine computes label anchors from shape bounding boxes.
type Engine struct {
	offsets map[model.State]model.Offset
	log     *zap.Logger
}

// NewEngine returns an engine applying the given manual offsets. A nil logger
// discards output.
func NewEngine(offsets map[model.State]model.Offset, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	cp := make(map[model.State]model.Offset, len(offsets))
	for k, v := range offsets {
		cp[k] = v
	}
	return &Engine{offsets: cp, log: log}
}

// Offset returns the manual nudge for state, zero when none is configured.
func (e *Engine) Offset(state model.State) model.Offset {
	return e.offsets[state]
}

// Compute returns the bounding-box center of every measurable shape, shifted
// by its manual offset. Shapes that fail to measure are left out.
func (e *Engine) Compute(shapes map[model.State]GeometryHandle) map[model.State]model.Point {
	out := make(map[model.State]model.Point, len(shapes))
	for state, h := range shapes {
		if h == nil {
			continue
		}
		box, err := h.BBox()
		if err != nil {
			e.log.Debug("skipping label", zap.String("state", string(state)), zap.Error(err))
			continue
		}
		cx, cy := box.Center()
		off := e.offsets[state]
		out[state] = model.Point{X: cx + off.DX, Y: cy + off.DY}
	}
	return out
}

// Sorted flattens positions into a slice ordered by state name.
func Sorted(pos map[model.State]model.Point) []model.LabelPosition {
	out := make([]model.LabelPosition, 0, len(pos))
	for s, p := range pos {
		out = append(out, model.LabelPosition{State: s, X: p.X, Y: p.Y})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].State < out[j].State })
	return out
}
