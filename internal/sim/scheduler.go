package sim

import (
	"sort"
	"time"
)

// Token cancels a scheduled task. A task whose token has been cancelled
// is skipped when it comes due; this is how a superseded auto-reset is
// prevented from stomping newer state.
type Token struct {
	cancelled bool
	fired     bool
}

// Cancel invalidates the task. Safe to call more than once, and after
// the task has already fired.
func (t *Token) Cancel() {
	t.cancelled = true
}

// Cancelled reports whether the task was invalidated.
func (t *Token) Cancelled() bool {
	return t.cancelled
}

// Fired reports whether the task's effect has run.
func (t *Token) Fired() bool {
	return t.fired
}

type task struct {
	deadline time.Duration
	seq      int
	token    *Token
	effect   func()
}

// Scheduler runs delayed effects on the simulation timeline. Everything
// is single-threaded: tasks fire only from RunDue, which the engine
// calls at the top of each tick, before any decision logic. A delay is
// a (deadline, token, effect) tuple; cancellation is by token.
type Scheduler struct {
	clock *Clock
	tasks []*task
	seq   int
}

// NewScheduler creates a scheduler bound to the given clock.
func NewScheduler(clock *Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// After schedules effect to run once d has elapsed on the simulation
// clock. Returns a token that cancels the task.
func (s *Scheduler) After(d time.Duration, effect func()) *Token {
	if d < 0 {
		d = 0
	}
	token := &Token{}
	s.seq++
	s.tasks = append(s.tasks, &task{
		deadline: s.clock.Now() + d,
		seq:      s.seq,
		token:    token,
		effect:   effect,
	})
	return token
}

// Pending returns the number of scheduled, not-yet-fired tasks,
// including cancelled ones that have not been collected.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// RunDue fires every task whose deadline has passed, in deadline order
// (insertion order breaks ties). Cancelled tasks are dropped without
// running. Effects that schedule new tasks never see them fire within
// the same RunDue call, even if already due; they run next tick.
func (s *Scheduler) RunDue() {
	now := s.clock.Now()

	var due []*task
	remaining := s.tasks[:0]
	for _, t := range s.tasks {
		if t.deadline <= now {
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	s.tasks = remaining

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].deadline != due[j].deadline {
			return due[i].deadline < due[j].deadline
		}
		return due[i].seq < due[j].seq
	})

	for _, t := range due {
		if t.token.cancelled {
			continue
		}
		t.token.fired = true
		t.effect()
	}
}

// Reset drops all pending tasks. Used on round reset, where every
// outstanding timer targets state that is about to be cleared.
func (s *Scheduler) Reset() {
	for _, t := range s.tasks {
		t.token.cancelled = true
	}
	s.tasks = nil
}
