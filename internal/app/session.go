package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"dev-journal/internal/assistant"
	"dev-journal/internal/journal"
)

// ErrBusy is returned when the same assistant job is already running.
var ErrBusy = errors.New("request already in progress")

// Notifier is told about every new week value. *autosave.Controller satisfies it.
type Notifier interface {
	Notify(w journal.Week)
}

// JobKind identifies an assistant action for in-flight tracking.
type JobKind int

const (
	JobSummary JobKind = iota
	JobDailyActions
	JobPlannerActions
	JobDailyGoal
)

// Job is one in-flight assistant request. Day is ignored for JobSummary.
type Job struct {
	Kind JobKind
	Day  journal.Day
}

type request struct {
	action journal.Action
	reply  chan journal.Week
}

// Session owns the current week. All changes go through Dispatch and are applied in
// order by a single goroutine.
type Session struct {
	requests chan request
	quit     chan struct{}
	done     chan struct{}
	once     sync.Once

	week     journal.Week
	final    journal.Week
	notifier Notifier

	assistant *assistant.Assistant

	mu   sync.Mutex
	busy map[Job]bool
}

// NewSession starts a session holding initial. notifier and asst may be nil.
func NewSession(initial journal.Week, notifier Notifier, asst *assistant.Assistant) *Session {
	s := &Session{
		requests:  make(chan request),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		week:      initial,
		notifier:  notifier,
		assistant: asst,
		busy:      make(map[Job]bool),
	}
	go s.loop()
	return s
}

func (s *Session) loop() {
	for {
		select {
		case req := <-s.requests:
			next := journal.Reduce(s.week, req.action)
			if next != s.week {
				s.week = next
				if s.notifier != nil {
					s.notifier.Notify(next)
				}
			}
			req.reply <- s.week
		case <-s.quit:
			s.final = s.week
			close(s.done)
			return
		}
	}
}

// Dispatch applies a to the latest week and returns the result. After Close it
// returns the last week without applying a.
func (s *Session) Dispatch(a journal.Action) journal.Week {
	reply := make(chan journal.Week, 1)
	select {
	case s.requests <- request{action: a, reply: reply}:
		return <-reply
	case <-s.done:
		return s.final
	}
}

// Week returns the current week.
func (s *Session) Week() journal.Week {
	return s.Dispatch(nil)
}

// Close stops the update loop. It is safe to call more than once.
func (s *Session) Close() {
	s.once.Do(func() { close(s.quit) })
	<-s.done
}

// Busy reports whether job is in flight.
func (s *Session) Busy(job Job) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy[job]
}

func (s *Session) begin(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[job] {
		return ErrBusy
	}
	s.busy[job] = true
	return nil
}

func (s *Session) end(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, job)
}

// Outcome describes what an assistant action did to the week.
type Outcome struct {
	// Skipped is set when the source field was blank and no request was made.
	Skipped bool
	// Err is the reason the fallback was used, if it was.
	Err  error
	Week journal.Week
}

// Fallback reports whether the assistant degraded to its fallback value.
func (o Outcome) Fallback() bool {
	return o.Err != nil
}

// SummarizeWeek replaces the retro summary and actions with a generated summary.
// The fallback texts are written too, so the user sees that the request failed.
func (s *Session) SummarizeWeek(ctx context.Context) (Outcome, error) {
	job := Job{Kind: JobSummary}
	if err := s.begin(job); err != nil {
		return Outcome{}, err
	}
	defer s.end(job)

	res := s.assistant.SummarizeWeek(ctx, s.Week())
	w := s.Dispatch(journal.ApplySummary{Summary: res.Value.Summary, Actions: res.Value.Actions})
	return Outcome{Err: res.Err, Week: w}, nil
}

// SuggestDailyActions appends action items for the daily goal of day to its log.
func (s *Session) SuggestDailyActions(ctx context.Context, day journal.Day) (Outcome, error) {
	return s.suggestActions(ctx, Job{Kind: JobDailyActions, Day: day}, func(w journal.Week) string {
		return w.DailyFor(day).Goal
	}, func(items []string) journal.Action {
		return journal.AppendDailySuggestions{Day: day, Items: items}
	})
}

// SuggestPlannerActions appends action items for the planner goal of day to its action items.
func (s *Session) SuggestPlannerActions(ctx context.Context, day journal.Day) (Outcome, error) {
	return s.suggestActions(ctx, Job{Kind: JobPlannerActions, Day: day}, func(w journal.Week) string {
		return w.PlannerFor(day).Goal
	}, func(items []string) journal.Action {
		return journal.AppendPlannerSuggestions{Day: day, Items: items}
	})
}

func (s *Session) suggestActions(
	ctx context.Context,
	job Job,
	source func(journal.Week) string,
	apply func([]string) journal.Action,
) (Outcome, error) {
	if !job.Day.Valid() {
		return Outcome{}, fmt.Errorf("%w: %d", journal.ErrInvalidDay, int(job.Day))
	}
	goal := source(s.Week())
	if strings.TrimSpace(goal) == "" {
		return Outcome{Skipped: true, Week: s.Week()}, nil
	}
	if err := s.begin(job); err != nil {
		return Outcome{}, err
	}
	defer s.end(job)

	res := s.assistant.SuggestActionItems(ctx, goal)
	if len(res.Value) == 0 {
		return Outcome{Err: res.Err, Week: s.Week()}, nil
	}
	return Outcome{Err: res.Err, Week: s.Dispatch(apply(res.Value))}, nil
}

// SuggestDailyGoal replaces the daily goal of day with one derived from its planner goal.
func (s *Session) SuggestDailyGoal(ctx context.Context, day journal.Day) (Outcome, error) {
	if !day.Valid() {
		return Outcome{}, fmt.Errorf("%w: %d", journal.ErrInvalidDay, int(day))
	}
	plannerGoal := s.Week().PlannerFor(day).Goal
	if strings.TrimSpace(plannerGoal) == "" {
		return Outcome{Skipped: true, Week: s.Week()}, nil
	}
	job := Job{Kind: JobDailyGoal, Day: day}
	if err := s.begin(job); err != nil {
		return Outcome{}, err
	}
	defer s.end(job)

	res := s.assistant.SuggestDailyGoal(ctx, plannerGoal)
	return Outcome{Err: res.Err, Week: s.Dispatch(journal.SetDailyGoal{Day: day, Goal: res.Value})}, nil
}
