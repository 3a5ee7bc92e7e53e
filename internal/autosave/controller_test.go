package autosave

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"dev-journal/internal/journal"
)

type manualTimer struct {
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// manualClock fires callbacks only from Advance, in deadline order.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &manualTimer{at: c.now + d, seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		sort.Slice(c.timers, func(i, j int) bool {
			if c.timers[i].at == c.timers[j].at {
				return c.timers[i].seq < c.timers[j].seq
			}
			return c.timers[i].at < c.timers[j].at
		})
		var next *manualTimer
		for _, t := range c.timers {
			if !t.stopped && !t.fired && t.at <= target {
				next = t
				break
			}
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		next.fired = true
		c.now = next.at
		c.mu.Unlock()
		next.f()
	}
}

type recordingSaver struct {
	mu    sync.Mutex
	saved []journal.Week
	err   error
}

func (s *recordingSaver) SaveWeek(_ context.Context, w journal.Week) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, w)
	return s.err
}

func (s *recordingSaver) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

func newTestController(saver Saver) (*Controller, *manualClock, *[]Status) {
	clock := &manualClock{}
	var statuses []Status
	c := New(saver, Options{
		Clock:    clock,
		OnStatus: func(s Status) { statuses = append(statuses, s) },
	})
	return c, clock, &statuses
}

func weekWithGoal(goal string) journal.Week {
	return journal.Empty().WithPlanner(journal.Monday, journal.PlannerGoal, goal)
}

func TestBurstOfEditsProducesOneTrailingWrite(t *testing.T) {
	saver := &recordingSaver{}
	c, clock, statuses := newTestController(saver)

	c.Notify(weekWithGoal("a"))
	clock.Advance(400 * time.Millisecond)
	c.Notify(weekWithGoal("ab"))
	clock.Advance(500 * time.Millisecond)
	c.Notify(weekWithGoal("abc"))

	clock.Advance(999 * time.Millisecond)
	if saver.count() != 0 {
		t.Fatalf("Expected no write before the quiet interval elapsed, got %d", saver.count())
	}
	if c.Status() != Saving {
		t.Errorf("Expected saving status, got %s", c.Status())
	}

	clock.Advance(1 * time.Millisecond)
	if saver.count() != 1 {
		t.Fatalf("Expected exactly one write at t=1900ms, got %d", saver.count())
	}
	if saver.saved[0] != weekWithGoal("abc") {
		t.Errorf("Expected the t=900ms state to be written, got %+v", saver.saved[0].Planner[journal.Monday])
	}
	if c.Status() != Saved {
		t.Errorf("Expected saved status, got %s", c.Status())
	}

	clock.Advance(1999 * time.Millisecond)
	if c.Status() != Saved {
		t.Errorf("Expected saved to persist for 2000ms, got %s", c.Status())
	}
	clock.Advance(1 * time.Millisecond)
	if c.Status() != Idle {
		t.Errorf("Expected idle at t=3900ms, got %s", c.Status())
	}

	want := []Status{Saving, Saved, Idle}
	if len(*statuses) != len(want) {
		t.Fatalf("Expected statuses %v, got %v", want, *statuses)
	}
	for i := range want {
		if (*statuses)[i] != want[i] {
			t.Errorf("status %d: expected %s, got %s", i, want[i], (*statuses)[i])
		}
	}
	if saver.count() != 1 {
		t.Errorf("Expected no further writes, got %d", saver.count())
	}
}

func TestNotifyDuringSavedReturnsToSaving(t *testing.T) {
	saver := &recordingSaver{}
	c, clock, statuses := newTestController(saver)

	c.Notify(weekWithGoal("one"))
	clock.Advance(DefaultDebounce)
	clock.Advance(500 * time.Millisecond)

	c.Notify(weekWithGoal("two"))
	if c.Status() != Saving {
		t.Fatalf("Expected saving after a new change, got %s", c.Status())
	}
	// The idle timer from the first write must not fire into the new cycle.
	clock.Advance(1600 * time.Millisecond)
	if c.Status() != Saving && c.Status() != Saved {
		t.Errorf("Unexpected status %s", c.Status())
	}
	clock.Advance(DefaultSavedDisplay + DefaultDebounce)

	if saver.count() != 2 || saver.saved[1] != weekWithGoal("two") {
		t.Fatalf("Expected two writes ending with 'two', got %d", saver.count())
	}
	want := []Status{Saving, Saved, Saving, Saved, Idle}
	if len(*statuses) != len(want) {
		t.Fatalf("Expected statuses %v, got %v", want, *statuses)
	}
}

func TestSaveErrorIsDropped(t *testing.T) {
	saver := &recordingSaver{err: errors.New("quota exceeded")}
	c, clock, _ := newTestController(saver)

	c.Notify(weekWithGoal("x"))
	clock.Advance(DefaultDebounce)
	if saver.count() != 1 {
		t.Fatalf("Expected one write attempt, got %d", saver.count())
	}
	clock.Advance(DefaultSavedDisplay + 10*DefaultDebounce)
	if saver.count() != 1 {
		t.Errorf("Expected no retry, got %d attempts", saver.count())
	}
	if c.Status() != Idle {
		t.Errorf("Expected idle after the cycle, got %s", c.Status())
	}
}

func TestCloseDiscardsPendingWrite(t *testing.T) {
	saver := &recordingSaver{}
	c, clock, _ := newTestController(saver)

	c.Notify(weekWithGoal("unsaved"))
	clock.Advance(500 * time.Millisecond)
	c.Close()
	clock.Advance(10 * DefaultDebounce)

	if saver.count() != 0 {
		t.Errorf("Expected pending write to be discarded, got %d writes", saver.count())
	}
	c.Notify(weekWithGoal("after close"))
	clock.Advance(10 * DefaultDebounce)
	if saver.count() != 0 {
		t.Error("Notify after Close must be ignored")
	}
}

func TestFlushWritesPendingValue(t *testing.T) {
	saver := &recordingSaver{}
	c, clock, _ := newTestController(saver)

	if wrote, err := c.Flush(context.Background()); wrote || err != nil {
		t.Fatalf("Expected nothing to flush, got wrote=%v err=%v", wrote, err)
	}

	c.Notify(weekWithGoal("flush me"))
	if !c.Pending() {
		t.Fatal("Expected a pending change")
	}
	wrote, err := c.Flush(context.Background())
	if err != nil || !wrote {
		t.Fatalf("Flush failed: wrote=%v err=%v", wrote, err)
	}
	if saver.count() != 1 || saver.saved[0] != weekWithGoal("flush me") {
		t.Fatal("Expected flushed value to be written")
	}

	clock.Advance(10 * DefaultDebounce)
	if saver.count() != 1 {
		t.Errorf("Expected the cancelled timer not to write again, got %d", saver.count())
	}
}

func TestFlushReturnsToIdleAfterSavedDisplay(t *testing.T) {
	saver := &recordingSaver{}
	c, clock, statuses := newTestController(saver)

	c.Notify(weekWithGoal("flushed"))
	if _, err := c.Flush(context.Background()); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if c.Status() != Saved {
		t.Fatalf("Expected saved after flush, got %s", c.Status())
	}

	clock.Advance(DefaultSavedDisplay - time.Millisecond)
	if c.Status() != Saved {
		t.Errorf("Expected saved to persist for 2000ms, got %s", c.Status())
	}
	clock.Advance(time.Millisecond)
	if c.Status() != Idle {
		t.Errorf("Expected idle after the saved display, got %s", c.Status())
	}

	want := []Status{Saving, Saved, Idle}
	if len(*statuses) != len(want) {
		t.Fatalf("Expected statuses %v, got %v", want, *statuses)
	}
}

// blockingSaver holds its first write until release is closed.
type blockingSaver struct {
	recordingSaver
	entered chan struct{}
	release chan struct{}

	flightMu    sync.Mutex
	inFlight    int
	maxInFlight int
	calls       int
}

func (s *blockingSaver) SaveWeek(ctx context.Context, w journal.Week) error {
	s.flightMu.Lock()
	s.inFlight++
	if s.inFlight > s.maxInFlight {
		s.maxInFlight = s.inFlight
	}
	s.calls++
	first := s.calls == 1
	s.flightMu.Unlock()

	if first {
		close(s.entered)
		<-s.release
	}
	err := s.recordingSaver.SaveWeek(ctx, w)

	s.flightMu.Lock()
	s.inFlight--
	s.flightMu.Unlock()
	return err
}

func TestWritesDoNotOverlap(t *testing.T) {
	saver := &blockingSaver{entered: make(chan struct{}), release: make(chan struct{})}
	clock := &manualClock{}
	c := New(saver, Options{Clock: clock})

	c.Notify(weekWithGoal("old"))
	timerDone := make(chan struct{})
	go func() {
		defer close(timerDone)
		clock.Advance(DefaultDebounce)
	}()
	<-saver.entered

	c.Notify(weekWithGoal("new"))
	flushDone := make(chan error, 1)
	go func() {
		_, err := c.Flush(context.Background())
		flushDone <- err
	}()

	select {
	case <-flushDone:
		t.Fatal("Flush finished while an earlier write was still in progress")
	case <-time.After(50 * time.Millisecond):
	}

	close(saver.release)
	<-timerDone
	if err := <-flushDone; err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	saver.flightMu.Lock()
	maxInFlight := saver.maxInFlight
	saver.flightMu.Unlock()
	if maxInFlight != 1 {
		t.Errorf("Expected writes to be serialized, saw %d at once", maxInFlight)
	}
	if saver.count() != 2 || saver.saved[1] != weekWithGoal("new") {
		t.Fatalf("Expected the newer week to be written last, got %d writes", saver.count())
	}
}
