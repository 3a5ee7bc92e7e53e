package autosave

import (
	"context"
	"log"
	"sync"
	"time"

	"dev-journal/internal/journal"
)

const (
	// DefaultDebounce is the quiet interval after the last change before a write.
	DefaultDebounce = 1000 * time.Millisecond
	// DefaultSavedDisplay is how long the saved status is shown before returning to idle.
	DefaultSavedDisplay = 2000 * time.Millisecond
)

// Status is the save indicator state. It is never persisted.
type Status int

const (
	Idle Status = iota
	Saving
	Saved
)

func (s Status) String() string {
	switch s {
	case Saving:
		return "saving"
	case Saved:
		return "saved"
	default:
		return "idle"
	}
}

// Saver writes a week to persistent storage.
type Saver interface {
	SaveWeek(ctx context.Context, w journal.Week) error
}

type Options struct {
	Debounce     time.Duration
	SavedDisplay time.Duration
	Clock        Clock
	// OnStatus is called on every status transition, outside the controller lock.
	OnStatus func(Status)
}

// Controller coalesces rapid changes into a single trailing write.
type Controller struct {
	saver        Saver
	debounce     time.Duration
	savedDisplay time.Duration
	clock        Clock
	onStatus     func(Status)

	// writeMu is held across a take-and-save so writes land in generation order.
	writeMu sync.Mutex

	mu         sync.Mutex
	emitMu     sync.Mutex
	status     Status
	pending    *journal.Week
	saveTimer  Timer
	idleTimer  Timer
	generation uint64
	closed     bool
}

func New(saver Saver, opts Options) *Controller {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	display := opts.SavedDisplay
	if display <= 0 {
		display = DefaultSavedDisplay
	}
	clock := opts.Clock
	if clock == nil {
		clock = realClock{}
	}
	return &Controller{
		saver:        saver,
		debounce:     debounce,
		savedDisplay: display,
		clock:        clock,
		onStatus:     opts.OnStatus,
	}
}

// Status returns the current indicator state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Notify records w as the latest value and restarts the quiet interval.
func (c *Controller) Notify(w journal.Week) {
	if c == nil {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.pending = &w
	c.generation++
	gen := c.generation
	stop(c.saveTimer)
	stop(c.idleTimer)
	c.idleTimer = nil
	c.saveTimer = c.clock.AfterFunc(c.debounce, func() { c.onTimer(gen) })
	changed := c.setStatus(Saving)
	c.mu.Unlock()

	if changed {
		c.emit(Saving)
	}
}

func (c *Controller) onTimer(gen uint64) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	if c.closed || gen != c.generation || c.pending == nil {
		c.mu.Unlock()
		return
	}
	w := *c.pending
	c.pending = nil
	c.saveTimer = nil
	c.mu.Unlock()

	c.write(w)

	c.mu.Lock()
	// A newer change arrived during the write; its own timer owns the status now.
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		return
	}
	changed := c.setStatus(Saved)
	c.idleTimer = c.clock.AfterFunc(c.savedDisplay, func() { c.onIdle(gen) })
	c.mu.Unlock()

	if changed {
		c.emit(Saved)
	}
}

func (c *Controller) onIdle(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.generation || c.status != Saved {
		c.mu.Unlock()
		return
	}
	c.setStatus(Idle)
	c.idleTimer = nil
	c.mu.Unlock()

	c.emit(Idle)
}

// Flush writes a pending value immediately. It reports whether anything was written.
func (c *Controller) Flush(ctx context.Context) (bool, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	if c.closed || c.pending == nil {
		c.mu.Unlock()
		return false, nil
	}
	w := *c.pending
	c.pending = nil
	c.generation++
	gen := c.generation
	stop(c.saveTimer)
	c.saveTimer = nil
	c.mu.Unlock()

	if err := c.saver.SaveWeek(ctx, w); err != nil {
		return true, err
	}

	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		return true, nil
	}
	changed := c.setStatus(Saved)
	stop(c.idleTimer)
	c.idleTimer = c.clock.AfterFunc(c.savedDisplay, func() { c.onIdle(gen) })
	c.mu.Unlock()
	if changed {
		c.emit(Saved)
	}
	return true, nil
}

// Close cancels all timers. A change still inside its quiet interval is discarded.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.pending = nil
	stop(c.saveTimer)
	stop(c.idleTimer)
	c.saveTimer, c.idleTimer = nil, nil
}

// Pending reports whether a change is waiting for its quiet interval to elapse.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

func (c *Controller) write(w journal.Week) {
	if err := c.saver.SaveWeek(context.Background(), w); err != nil {
		log.Printf("Warning: autosave failed, change kept in memory only: %v", err)
	}
}

// setStatus must be called with mu held.
func (c *Controller) setStatus(s Status) bool {
	if c.status == s {
		return false
	}
	c.status = s
	return true
}

func (c *Controller) emit(s Status) {
	if c.onStatus == nil {
		return
	}
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	c.onStatus(s)
}

func stop(t Timer) {
	if t != nil {
		t.Stop()
	}
}
