// Package schedule runs deferred callbacks on the caller's goroutine.
//
// A Scheduler never starts timers itself. Arming a callback records it and
// queues a Timer that the runtime (the terminal front end, or a test) waits
// on; when the wait ends the runtime hands the Timer back through Fire. Only
// one callback per Kind is pending at a time: arming a Kind again
// invalidates the earlier Timer, so a late Fire of a superseded Timer is a
// no-op.
package schedule

import (
	"sort"
	"time"
)

// Kind groups callbacks that supersede each other.
type Kind int

const (
	// Announce delivers the pending live-region message.
	Announce Kind = iota
	// Ungrab clears the transient grabbed styling after a swap.
	Ungrab
	// Focus restores focus once the front end has re-rendered.
	Focus
)

func (k Kind) String() string {
	switch k {
	case Announce:
		return "announce"
	case Ungrab:
		return "ungrab"
	case Focus:
		return "focus"
	default:
		return "unknown"
	}
}

// Timer identifies one armed callback.
type Timer struct {
	Kind  Kind
	Seq   uint64
	Delay time.Duration
}

type pendingCall struct {
	seq uint64
	fn  func()
}

// Scheduler tracks at most one pending callback per Kind.
type Scheduler struct {
	seq     uint64
	pending map[Kind]pendingCall
	armed   []Timer
}

func New() *Scheduler {
	return &Scheduler{pending: make(map[Kind]pendingCall)}
}

// After arms fn to run once delay has elapsed, replacing any pending
// callback of the same kind.
func (s *Scheduler) After(kind Kind, delay time.Duration, fn func()) Timer {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := Timer{Kind: kind, Seq: s.seq, Delay: delay}
	s.pending[kind] = pendingCall{seq: t.Seq, fn: fn}
	s.armed = append(s.armed, t)
	return t
}

// Cancel drops the pending callback of kind. It reports whether one was
// pending.
func (s *Scheduler) Cancel(kind Kind) bool {
	if _, ok := s.pending[kind]; !ok {
		return false
	}
	delete(s.pending, kind)
	return true
}

func (s *Scheduler) Pending(kind Kind) bool {
	_, ok := s.pending[kind]
	return ok
}

// Current reports whether t is still the live timer of its kind.
func (s *Scheduler) Current(t Timer) bool {
	call, ok := s.pending[t.Kind]
	return ok && call.seq == t.Seq
}

// Fire runs the callback for t if t has not been superseded or cancelled.
func (s *Scheduler) Fire(t Timer) bool {
	call, ok := s.pending[t.Kind]
	if !ok || call.seq != t.Seq {
		return false
	}
	delete(s.pending, t.Kind)
	if call.fn != nil {
		call.fn()
	}
	return true
}

// Drain returns the timers armed since the last Drain. Timers superseded
// in the meantime are skipped.
func (s *Scheduler) Drain() []Timer {
	if len(s.armed) == 0 {
		return nil
	}
	out := make([]Timer, 0, len(s.armed))
	for _, t := range s.armed {
		if s.Current(t) {
			out = append(out, t)
		}
	}
	s.armed = s.armed[:0]
	return out
}

// Flush fires every pending callback in arming order, including callbacks
// armed while flushing, and returns how many ran.
func (s *Scheduler) Flush() int {
	ran := 0
	for len(s.pending) > 0 {
		calls := make([]Timer, 0, len(s.pending))
		for kind, call := range s.pending {
			calls = append(calls, Timer{Kind: kind, Seq: call.seq})
		}
		sort.Slice(calls, func(i, j int) bool { return calls[i].Seq < calls[j].Seq })
		if s.Fire(calls[0]) {
			ran++
		}
	}
	s.armed = s.armed[:0]
	return ran
}
