package scheduler

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

// Task is one named periodic job. Fire runs the pass with an overlap
// guard: a tick that arrives while the previous pass is still executing
// is skipped, never queued, so a slow pass cannot double-fire.
type Task struct {
	Name     string
	run      func(ctx context.Context) error
	inFlight atomic.Bool
}

// Fire executes one guarded pass. The error boundary is here: a failing
// or panicking pass is logged and the task stays schedulable.
func (t *Task) Fire(ctx context.Context) {
	if !t.inFlight.CompareAndSwap(false, true) {
		log.Printf("INFO (Scheduler): %s still running, skipping tick", t.Name)
		return
	}
	defer t.inFlight.Store(false)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR (Scheduler): %s panicked: %v", t.Name, r)
		}
	}()

	if err := t.run(ctx); err != nil {
		log.Printf("ERROR (Scheduler): %s: %v", t.Name, err)
	}
}

type cadence struct {
	every time.Duration // interval tasks
	hour  int           // time-of-day tasks
	min   int
	daily bool
}

type entry struct {
	task *Task
	cad  cadence
}

// Scheduler owns a small set of independent periodic tasks, one goroutine
// per task.
type Scheduler struct {
	entries []entry
}

func New() *Scheduler {
	return &Scheduler{}
}

// Every registers a task that fires on a fixed interval.
func (s *Scheduler) Every(name string, d time.Duration, run func(ctx context.Context) error) *Task {
	t := &Task{Name: name, run: run}
	s.entries = append(s.entries, entry{task: t, cad: cadence{every: d}})
	return t
}

// DailyAt registers a task that fires once per day at the given local time.
func (s *Scheduler) DailyAt(name string, hour, min int, run func(ctx context.Context) error) *Task {
	t := &Task{Name: name, run: run}
	s.entries = append(s.entries, entry{task: t, cad: cadence{daily: true, hour: hour, min: min}})
	return t
}

// Start launches every registered task. Tasks stop when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	for _, e := range s.entries {
		if e.cad.daily {
			go s.runDaily(ctx, e.task, e.cad.hour, e.cad.min)
		} else {
			go s.runInterval(ctx, e.task, e.cad.every)
		}
		log.Printf("INFO (Scheduler): started %s", e.task.Name)
	}
}

func (s *Scheduler) runInterval(ctx context.Context, t *Task, d time.Duration) {
	ticker := time.NewTicker(d)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Fire(ctx)
		}
	}
}

func (s *Scheduler) runDaily(ctx context.Context, t *Task, hour, min int) {
	for {
		timer := time.NewTimer(time.Until(NextDaily(time.Now(), hour, min)))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			t.Fire(ctx)
		}
	}
}

// NextDaily returns the next occurrence of hour:min strictly after now.
func NextDaily(now time.Time, hour, min int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
