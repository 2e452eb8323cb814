// Package selection implements the hover/selection state machine of the map
// as a pure reducer plus a small dispatcher that fires callbacks.
package selection

import (
	"fmt"

	"github.com/intelligrit/salesmap/internal/model"
)

// Mode is the granularity at which clicks select.
type Mode int

const (
	ModeRegion Mode = iota
	ModeState
)

func (m Mode) String() string {
	if m == ModeState {
		return "state"
	}
	return "region"
}

// MarshalText lets Mode appear as "region"/"state" in JSON.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMode accepts "region", "state" or "" (region).
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "region":
		return ModeRegion, nil
	case "state":
		return ModeState, nil
	}
	return ModeRegion, fmt.Errorf("unknown selection mode %q", s)
}

// Resolver is the part of the geo index the reducer needs.
type Resolver interface {
	RegionOf(model.State) (model.Region, bool)
}

// State is the full selection state. Empty strings mean null.
type State struct {
	Mode           Mode         `json:"mode"`
	HoveredState   model.State  `json:"hovered_state,omitempty"`
	HoveredRegion  model.Region `json:"hovered_region,omitempty"`
	SelectedRegion model.Region `json:"selected_region,omitempty"`
	SelectedState  model.State  `json:"selected_state,omitempty"`
}

// Initial returns the state a freshly mounted map starts in.
func Initial(mode Mode) State {
	return State{Mode: mode}
}

// Event is a pointer or toolbar interaction.
type Event interface {
	event()
}

type (
	// SetMode switches granularity.
	SetMode struct{ Mode Mode }
	// Enter is the pointer entering a state's shape.
	Enter struct{ State model.State }
	// Leave is the pointer leaving the shape it was over.
	Leave struct{}
	// Click is a click on a state's shape.
	Click struct{ State model.State }
	// ClearSelection drops both selections.
	ClearSelection struct{}
)

func (SetMode) event()        {}
func (Enter) event()          {}
func (Leave) event()          {}
func (Click) event()          {}
func (ClearSelection) event() {}

// Effect is a notification for the outside world produced by a transition.
type Effect interface {
	effect()
}

type (
	// RegionSelected reports a region selection; "" means cleared.
	RegionSelected struct{ Region model.Region }
	// StateSelected reports a state selection; "" means cleared.
	StateSelected struct{ State model.State }
)

func (RegionSelected) effect() {}
func (StateSelected) effect()  {}

// Options tunes transitions that are a matter of taste.
type Options struct {
	// ClearOnModeSwitch drops the selection when the mode actually changes.
	ClearOnModeSwitch bool
}

// Reduce applies ev to s. It never mutates its inputs and never fails: events
// naming an unmapped state skip their region-dependent parts.
func Reduce(idx Resolver, opts Options, s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case SetMode:
		if opts.ClearOnModeSwitch && ev.Mode != s.Mode && s.hasSelection() {
			s.Mode = ev.Mode
			s.SelectedRegion, s.SelectedState = "", ""
			return s, []Effect{StateSelected{}, RegionSelected{}}
		}
		s.Mode = ev.Mode
		return s, nil

	case Enter:
		s.HoveredState = ev.State
		if s.Mode == ModeRegion {
			r, _ := idx.RegionOf(ev.State)
			s.HoveredRegion = r
		}
		return s, nil

	case Leave:
		s.HoveredState, s.HoveredRegion = "", ""
		return s, nil

	case Click:
		r, ok := idx.RegionOf(ev.State)
		if s.Mode == ModeRegion {
			if !ok {
				return s, nil
			}
			s.SelectedRegion = r
			s.SelectedState = ""
			return s, []Effect{RegionSelected{Region: r}, StateSelected{}}
		}
		s.SelectedState = ev.State
		effects := []Effect{StateSelected{State: ev.State}}
		if ok {
			s.SelectedRegion = r
			effects = append(effects, RegionSelected{Region: r})
		}
		return s, effects

	case ClearSelection:
		s.SelectedRegion, s.SelectedState = "", ""
		return s, []Effect{RegionSelected{}, StateSelected{}}
	}
	return s, nil
}

func (s State) hasSelection() bool {
	return s.SelectedRegion != "" || s.SelectedState != ""
}
