// Package anim schedules periodic work on the frame loop.
//
// The renderer drives state-transition functions from the frame callback
// rather than from timers: every frame the app calls [Scheduler.Advance]
// with the frame delta, and the scheduler decides which registered tasks
// are due. Owning the (period, callback) pairs in one place gives two
// guarantees the frame loop depends on: a task never overlaps itself, and
// a task that runs long skips missed deadlines instead of stacking them.
package anim

import (
	"time"

	"github.com/ekalosak/graph3d/pkg/errors"
	"github.com/ekalosak/graph3d/pkg/observability"
)

// TickFunc is a scheduled callback. Tick counts completed invocations of
// this task starting at 1; delay is how far past the nominal deadline the
// invocation started, in seconds (or the frame delta for per-frame tasks).
// A returned error aborts the frame loop.
type TickFunc func(tick int, delay float32) error

// Task is a handle to a registered task, usable to retune the period while
// the loop runs (settings live-reload).
type Task struct {
	s        *Scheduler
	period   float64 // seconds; 0 means every frame
	deadline float64
	tick     int
	fn       TickFunc
}

// SetPeriod changes the task's period. The pending deadline moves with it:
// the next run is one new period after the previous run, or after now when
// that is already past. Non-positive periods and per-frame tasks are
// configuration errors.
func (t *Task) SetPeriod(period float32) error {
	if period <= 0 {
		return errors.New(errors.ErrCodeInvalidOption, "task period must be positive, got %v", period)
	}
	if t.period == 0 {
		return errors.New(errors.ErrCodeInvalidOption, "per-frame tasks have no period")
	}
	prev := t.deadline - t.period
	t.period = float64(period)
	t.deadline = prev + t.period
	if t.deadline < t.s.elapsed {
		t.deadline = t.s.elapsed + t.period
	}
	return nil
}

// Scheduler owns the registered tasks. It is driven, not self-driving:
// nothing happens between Advance calls, and a scheduler with no tasks is
// inert. Not safe for concurrent use; all calls belong on the frame loop's
// goroutine.
type Scheduler struct {
	tasks     []*Task
	elapsed   float64
	advancing bool
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler { return &Scheduler{} }

// Every registers fn to run once per period and returns its handle. The
// first run is due one full period after registration. A non-positive
// period is a configuration error.
func (s *Scheduler) Every(period float32, fn TickFunc) (*Task, error) {
	if period <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidOption, "task period must be positive, got %v", period)
	}
	if fn == nil {
		return nil, errors.New(errors.ErrCodeInvalidOption, "task callback must not be nil")
	}
	t := &Task{
		s:        s,
		period:   float64(period),
		deadline: s.elapsed + float64(period),
		fn:       fn,
	}
	s.tasks = append(s.tasks, t)
	return t, nil
}

// EveryFrame registers fn to run on every Advance, with delay set to the
// frame delta.
func (s *Scheduler) EveryFrame(fn TickFunc) {
	s.tasks = append(s.tasks, &Task{s: s, fn: fn})
}

// Elapsed returns the total scheduled time advanced so far, in seconds.
func (s *Scheduler) Elapsed() float32 { return float32(s.elapsed) }

// Advance moves scheduled time forward by dt seconds and runs every task
// that came due, at most once per task. When more than one deadline of the
// same task passed (a long frame, or a tick that ran longer than its
// period), the extra deadlines are skipped, not stacked: the task is
// re-armed relative to now. The first task error aborts and is returned;
// tasks are always re-armed first, so a recovered caller may keep
// advancing.
func (s *Scheduler) Advance(dt float32) error {
	if s.advancing {
		return errors.New(errors.ErrCodeContract, "Advance called from within a tick")
	}
	s.advancing = true
	defer func() { s.advancing = false }()

	s.elapsed += float64(dt)
	for _, t := range s.tasks {
		if t.period == 0 {
			t.tick++
			if err := t.fn(t.tick, dt); err != nil {
				return err
			}
			continue
		}
		if s.elapsed < t.deadline {
			continue
		}
		delay := s.elapsed - t.deadline
		t.tick++
		t.deadline += t.period
		// Skip deadlines that already passed too.
		for s.elapsed >= t.deadline {
			t.tick++
			observability.Tick().OnTickSkipped(t.tick)
			t.deadline += t.period
		}

		observability.Tick().OnTickStart(t.tick, durationOf(delay))
		start := time.Now()
		err := t.fn(t.tick, float32(delay))
		observability.Tick().OnTickComplete(t.tick, time.Since(start), err)
		if err != nil {
			return err
		}
	}
	return nil
}

func durationOf(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
