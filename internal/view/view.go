// Package view ties the map pieces together into one mounted, interactive
// choropleth: hierarchy, palette, selection machine, label scheduler and
// tooltip.
package view

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/intelligrit/salesmap/internal/choropleth"
	"github.com/intelligrit/salesmap/internal/geo"
	"github.com/intelligrit/salesmap/internal/geometry"
	"github.com/intelligrit/salesmap/internal/labels"
	"github.com/intelligrit/salesmap/internal/metrics"
	"github.com/intelligrit/salesmap/internal/model"
	"github.com/intelligrit/salesmap/internal/selection"
	"github.com/intelligrit/salesmap/internal/tooltip"
)

// Options configures a view at mount time.
type Options struct {
	Index     *geo.Index
	Map       *geometry.Map
	Dataset   model.RegionDataset
	Dark      bool
	Mode      selection.Mode
	Selection selection.Options
	Callbacks selection.Callbacks

	// Emphasis picks brightness boosts per theme. Nil uses the defaults.
	Emphasis func(dark bool) choropleth.Emphasis

	LabelOffsets map[model.State]model.Offset
	LabelDelay   time.Duration
	ShowLabels   bool

	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// View is one mounted map. It is not safe for concurrent use.
type View struct {
	opts      Options
	log       *zap.Logger
	machine   *selection.Machine
	painter   *choropleth.Painter
	scheduler *labels.Scheduler
	labelsOn  bool
	mounted   bool
}

// Mount builds a view and, if labels are shown, schedules the first label
// pass.
func Mount(opts Options) *View {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Emphasis == nil {
		opts.Emphasis = choropleth.DefaultEmphasis
	}

	v := &View{opts: opts, log: opts.Logger, mounted: true}
	v.machine = selection.NewMachine(opts.Index, opts.Mode, opts.Selection, opts.Callbacks)
	v.repaint()

	v.scheduler = labels.NewScheduler(labels.NewEngine(opts.LabelOffsets, v.log), opts.LabelDelay)
	if opts.Metrics != nil {
		passes := opts.Metrics.LabelPassesTotal
		v.scheduler.OnPass = func(outcome string) { passes.WithLabelValues(outcome).Inc() }
	}
	v.SetLabels(opts.ShowLabels)
	return v
}

func (v *View) repaint() {
	v.painter = choropleth.NewPainter(v.opts.Index, v.opts.Dataset, v.opts.Dark, v.opts.Emphasis(v.opts.Dark))
}

// Dispatch applies one interaction event.
func (v *View) Dispatch(ev selection.Event) selection.State {
	if v.opts.Metrics != nil {
		v.opts.Metrics.EventsTotal.WithLabelValues(EventName(ev)).Inc()
	}
	s := v.machine.Dispatch(ev)
	v.log.Debug("map event",
		zap.String("event", EventName(ev)),
		zap.String("mode", s.Mode.String()),
		zap.String("selected_region", string(s.SelectedRegion)),
		zap.String("selected_state", string(s.SelectedState)))
	return s
}

// State returns the current selection state.
func (v *View) State() selection.State {
	return v.machine.State()
}

// Dark reports the current theme.
func (v *View) Dark() bool {
	return v.opts.Dark
}

// Dataset returns the dataset the view is painting.
func (v *View) Dataset() model.RegionDataset {
	return v.opts.Dataset
}

// SetDataset swaps in a refreshed dataset. Geometry is unchanged, so labels
// are not re-measured.
func (v *View) SetDataset(ds model.RegionDataset) {
	v.opts.Dataset = ds
	v.repaint()
}

// SetDark switches theme.
func (v *View) SetDark(dark bool) {
	if v.opts.Dark == dark {
		return
	}
	v.opts.Dark = dark
	v.repaint()
}

// SetLabels toggles state labels. Turning them on commits the current shapes
// and schedules a measurement pass; turning them off drops positions.
func (v *View) SetLabels(on bool) {
	if !v.mounted {
		return
	}
	v.labelsOn = on
	if !on {
		v.scheduler.Invalidate()
		return
	}
	v.scheduler.Commit(v.handles())
}

// LabelsOn reports whether labels are shown.
func (v *View) LabelsOn() bool {
	return v.labelsOn
}

func (v *View) handles() map[model.State]labels.GeometryHandle {
	out := make(map[model.State]labels.GeometryHandle)
	if v.opts.Map == nil {
		return out
	}
	for _, s := range v.opts.Map.Shapes {
		out[s.State] = s
	}
	return out
}

// Labels returns the label positions of the latest completed pass without
// waiting.
func (v *View) Labels() ([]model.LabelPosition, bool) {
	if !v.labelsOn {
		return nil, false
	}
	pos, ok := v.scheduler.Latest()
	if !ok {
		return nil, false
	}
	return labels.Sorted(pos), true
}

// WaitLabels blocks until the pending label pass completes or ctx is done.
func (v *View) WaitLabels(ctx context.Context) ([]model.LabelPosition, bool) {
	if !v.labelsOn {
		return nil, false
	}
	if !v.scheduler.Settle(ctx) {
		return nil, false
	}
	return v.Labels()
}

// Fill resolves the presentation of one state under the current selection.
func (v *View) Fill(state model.State) choropleth.Fill {
	return v.painter.Fill(state, v.machine.State())
}

// Fills resolves every drawn state, keyed by state name.
func (v *View) Fills() map[model.State]choropleth.Fill {
	if v.opts.Map == nil {
		return nil
	}
	st := v.machine.State()
	out := make(map[model.State]choropleth.Fill, len(v.opts.Map.Shapes))
	for _, s := range v.opts.Map.Shapes {
		out[s.State] = v.painter.Fill(s.State, st)
	}
	return out
}

// Describe returns the tooltip for any state.
func (v *View) Describe(state model.State) tooltip.Info {
	return tooltip.Describe(v.opts.Index, v.opts.Dataset, state)
}

// Tooltip returns the tooltip for the hovered state, if any.
func (v *View) Tooltip() (tooltip.Info, bool) {
	s := v.machine.State()
	if s.HoveredState == "" {
		return tooltip.Info{}, false
	}
	return v.Describe(s.HoveredState), true
}

// Unmount abandons any pending label pass. The view must not be used after.
func (v *View) Unmount() {
	if !v.mounted {
		return
	}
	v.mounted = false
	v.labelsOn = false
	v.scheduler.Close()
}

// EventName is the wire name of an event.
func EventName(ev selection.Event) string {
	switch ev.(type) {
	case selection.SetMode:
		return "mode"
	case selection.Enter:
		return "enter"
	case selection.Leave:
		return "leave"
	case selection.Click:
		return "click"
	case selection.ClearSelection:
		return "clear"
	}
	return "unknown"
}
