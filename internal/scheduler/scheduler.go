// Package scheduler fires the monthly recap job on the first of each month.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/golfimprover/golfimprover/internal/service"
)

// RecapRunner is the slice of the recap job the scheduler needs.
type RecapRunner interface {
	GenerateAll(ctx context.Context, month string) (int, error)
}

type Scheduler struct {
	runner RecapRunner
	loc    *time.Location
	cancel context.CancelFunc
	done   chan struct{}
}

func New(runner RecapRunner, tz string) (*Scheduler, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	return &Scheduler{runner: runner, loc: loc}, nil
}

// Start launches the timer loop. It returns immediately; the loop runs until
// Stop is called.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx)
}

// Stop cancels the loop and waits for it to exit.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	for {
		next := NextRun(time.Now().In(s.loc))
		slog.Info("recap job scheduled", "next_run", next)

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		month := service.PreviousMonth(time.Now().In(s.loc))
		count, err := s.runner.GenerateAll(ctx, month)
		if err != nil {
			slog.Error("scheduled recap job failed", "error", err, "month", month)
			continue
		}
		slog.Info("scheduled recap job finished", "month", month, "generated", count)
	}
}

// NextRun returns midnight on the first of the month after now, in now's
// location.
func NextRun(now time.Time) time.Time {
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return firstOfThisMonth.AddDate(0, 1, 0)
}
