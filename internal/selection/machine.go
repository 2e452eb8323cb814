package selection

import "github.com/intelligrit/salesmap/internal/model"

// Callbacks receive selection changes. Either may be nil.
type Callbacks struct {
	OnRegionSelected func(model.Region)
	OnStateSelected  func(model.State)
}

// Machine owns one view's selection state. It is not safe for concurrent use;
// callers that share a view across goroutines must serialise Dispatch.
type Machine struct {
	idx   Resolver
	opts  Options
	cb    Callbacks
	state State
}

// NewMachine returns a machine in the initial state for mode.
func NewMachine(idx Resolver, mode Mode, opts Options, cb Callbacks) *Machine {
	return &Machine{idx: idx, opts: opts, cb: cb, state: Initial(mode)}
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	return m.state
}

// Dispatch runs one transition to completion and then fires its callbacks in
// order. It returns the new state.
func (m *Machine) Dispatch(ev Event) State {
	next, effects := Reduce(m.idx, m.opts, m.state, ev)
	m.state = next
	for _, e := range effects {
		switch e := e.(type) {
		case RegionSelected:
			if m.cb.OnRegionSelected != nil {
				m.cb.OnRegionSelected(e.Region)
			}
		case StateSelected:
			if m.cb.OnStateSelected != nil {
				m.cb.OnStateSelected(e.State)
			}
		}
	}
	return next
}
