package labels

import (
	"context"
	"sync"
	"time"

	"github.com/intelligrit/salesmap/internal/model"
)

// Pass outcomes reported to OnPass.
const (
	OutcomePublished = "published"
	OutcomeAbandoned = "abandoned"
)

// Scheduler runs the measurement pass after a short delay, once the shapes of
// a commit exist. A pass only publishes if no newer commit, invalidation or
// close happened in between, so re-running is always safe.
type Scheduler struct {
	engine *Engine
	delay  time.Duration

	// OnPass, when set, is called after every pass with its outcome.
	OnPass func(outcome string)

	mu      sync.Mutex
	gen     uint64
	closed  bool
	timer   *time.Timer
	done    chan struct{}
	latest  map[model.State]model.Point
	settled bool
}

// NewScheduler returns a scheduler that measures delay after each commit.
func NewScheduler(engine *Engine, delay time.Duration) *Scheduler {
	done := make(chan struct{})
	close(done)
	return &Scheduler{engine: engine, delay: delay, done: done}
}

// Commit records a new shape set and schedules its measurement. Any pass still
// pending for an older commit is abandoned. It returns the commit generation.
func (s *Scheduler) Commit(shapes map[model.State]GeometryHandle) uint64 {
	snapshot := make(map[model.State]GeometryHandle, len(shapes))
	for k, v := range shapes {
		snapshot[k] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.gen
	}
	s.bumpLocked()
	gen := s.gen
	done := s.done
	s.timer = time.AfterFunc(s.delay, func() { s.run(gen, snapshot, done) })
	return gen
}

// Invalidate drops published positions and any pending pass, e.g. when labels
// are hidden.
func (s *Scheduler) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.bumpLocked()
	close(s.done)
}

// bumpLocked starts a new generation. The previous generation's waiters are
// released by whichever pass or call retires it.
func (s *Scheduler) bumpLocked() {
	if s.timer != nil && s.timer.Stop() {
		// The pending pass never ran; release its waiters here.
		s.report(OutcomeAbandoned)
		closeOnce(s.done)
	}
	s.gen++
	s.latest = nil
	s.settled = false
	s.done = make(chan struct{})
}

func (s *Scheduler) run(gen uint64, shapes map[model.State]GeometryHandle, done chan struct{}) {
	pos := s.engine.Compute(shapes)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer closeOnce(done)
	if s.closed || gen != s.gen {
		s.report(OutcomeAbandoned)
		return
	}
	s.latest = pos
	s.settled = true
	s.timer = nil
	s.report(OutcomePublished)
}

func (s *Scheduler) report(outcome string) {
	if s.OnPass != nil {
		s.OnPass(outcome)
	}
}

// Latest returns a copy of the positions published for the current commit and
// whether the pass has completed.
func (s *Scheduler) Latest() (map[model.State]model.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.settled {
		return nil, false
	}
	out := make(map[model.State]model.Point, len(s.latest))
	for k, v := range s.latest {
		out[k] = v
	}
	return out, true
}

// Settle blocks until the current generation has been measured, invalidated
// or closed, or ctx is done. It reports whether positions are available.
func (s *Scheduler) Settle(ctx context.Context) bool {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
		return false
	}
	_, ok := s.Latest()
	return ok
}

// Generation returns the current commit generation.
func (s *Scheduler) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Close abandons pending work and stops accepting commits. It is the unmount
// hook of the owning view.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.timer != nil && s.timer.Stop() {
		s.report(OutcomeAbandoned)
	}
	s.closed = true
	s.latest = nil
	s.settled = false
	closeOnce(s.done)
}

func closeOnce(ch chan struct{}) {
	select {
	case <-ch:
	default:
		close(ch)
	}
}
