package anim

import (
	stderrors "errors"
	"testing"

	"github.com/ekalosak/graph3d/pkg/errors"
)

func TestEveryFiresOncePerPeriod(t *testing.T) {
	s := NewScheduler()
	var calls int
	var lastTick int
	if _, err := s.Every(0.1, func(tick int, delay float32) error {
		calls++
		lastTick = tick
		if delay < 0 {
			t.Errorf("negative delay %v", delay)
		}
		return nil
	}); err != nil {
		t.Fatalf("Every = %v", err)
	}

	// Ten frames at exactly the period: one tick per frame, ten total.
	for range 10 {
		if err := s.Advance(0.1); err != nil {
			t.Fatalf("Advance = %v", err)
		}
	}
	if calls != 10 {
		t.Errorf("calls = %d, want 10", calls)
	}
	if lastTick != 10 {
		t.Errorf("last tick = %d, want 10", lastTick)
	}
}

func TestSubPeriodFramesDoNotFire(t *testing.T) {
	s := NewScheduler()
	var calls int
	_, _ = s.Every(1, func(int, float32) error { calls++; return nil })

	for range 9 {
		_ = s.Advance(0.1)
	}
	if calls != 0 {
		t.Errorf("fired %d times before the period elapsed", calls)
	}
	_ = s.Advance(0.1)
	if calls != 1 {
		t.Errorf("calls = %d after one full period, want 1", calls)
	}
}

func TestLongFrameSkipsNotStacks(t *testing.T) {
	s := NewScheduler()
	var calls int
	var ticks []int
	_, _ = s.Every(0.1, func(tick int, delay float32) error {
		calls++
		ticks = append(ticks, tick)
		return nil
	})

	// One frame spanning 5 periods: the task runs once, and the tick
	// counter accounts for the skipped deadlines.
	if err := s.Advance(0.55); err != nil {
		t.Fatalf("Advance = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (missed deadlines must not stack)", calls)
	}

	// The next period fires normally: the task was re-armed.
	_ = s.Advance(0.1)
	if calls != 2 {
		t.Errorf("calls = %d after re-arm, want 2", calls)
	}
	if ticks[len(ticks)-1] <= ticks[0] {
		t.Errorf("tick did not advance across skip: %v", ticks)
	}
}

func TestEveryFrame(t *testing.T) {
	s := NewScheduler()
	var deltas []float32
	s.EveryFrame(func(tick int, delay float32) error {
		deltas = append(deltas, delay)
		return nil
	})
	_ = s.Advance(0.016)
	_ = s.Advance(0.032)
	if len(deltas) != 2 || deltas[0] != 0.016 || deltas[1] != 0.032 {
		t.Errorf("deltas = %v", deltas)
	}
}

func TestTaskErrorPropagatesAndRearms(t *testing.T) {
	s := NewScheduler()
	boom := stderrors.New("boom")
	var calls int
	_, _ = s.Every(0.1, func(int, float32) error {
		calls++
		if calls == 1 {
			return boom
		}
		return nil
	})

	if err := s.Advance(0.1); !stderrors.Is(err, boom) {
		t.Fatalf("Advance = %v, want boom", err)
	}
	// Re-armed despite the error.
	if err := s.Advance(0.1); err != nil {
		t.Fatalf("Advance after error = %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestInvalidRegistration(t *testing.T) {
	s := NewScheduler()
	if _, err := s.Every(0, func(int, float32) error { return nil }); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("zero period error = %v, want INVALID_OPTION", err)
	}
	if _, err := s.Every(-1, func(int, float32) error { return nil }); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("negative period error = %v, want INVALID_OPTION", err)
	}
	if _, err := s.Every(1, nil); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("nil callback error = %v, want INVALID_OPTION", err)
	}
}

func TestSetPeriod(t *testing.T) {
	s := NewScheduler()
	var calls int
	task, err := s.Every(1, func(int, float32) error { calls++; return nil })
	if err != nil {
		t.Fatalf("Every = %v", err)
	}

	// Retune to a tenth of the original period before anything fires.
	if err := task.SetPeriod(0.1); err != nil {
		t.Fatalf("SetPeriod = %v", err)
	}
	for range 5 {
		_ = s.Advance(0.1)
	}
	if calls != 5 {
		t.Errorf("calls = %d after retune, want 5", calls)
	}

	if err := task.SetPeriod(0); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("SetPeriod(0) = %v, want INVALID_OPTION", err)
	}
}

func TestEmptySchedulerIsInert(t *testing.T) {
	s := NewScheduler()
	for range 100 {
		if err := s.Advance(0.1); err != nil {
			t.Fatalf("Advance = %v", err)
		}
	}
	if e := s.Elapsed(); e < 9.99 || e > 10.01 {
		t.Errorf("Elapsed = %v, want ~10", e)
	}
}

func TestReentrantAdvanceIsContractViolation(t *testing.T) {
	s := NewScheduler()
	var inner error
	s.EveryFrame(func(int, float32) error {
		inner = s.Advance(0.1)
		return nil
	})
	_ = s.Advance(0.1)
	if !errors.Is(inner, errors.ErrCodeContract) {
		t.Errorf("reentrant Advance = %v, want CONTRACT_VIOLATION", inner)
	}
}
