package services

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/yeremiapane/table-reservation/utils"
)

// Sweeper is anything holding state that expires, e.g. the in-memory session store or the
// per-IP rate limiter.
type Sweeper interface {
	Sweep() int
}

// SweepFunc adapts a function to Sweeper.
type SweepFunc func() int

func (f SweepFunc) Sweep() int { return f() }

// Janitor runs the registered sweepers on a fixed interval.
type Janitor struct {
	scheduler gocron.Scheduler
}

func NewJanitor(every time.Duration, sweepers map[string]Sweeper) (*Janitor, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	for name, sweeper := range sweepers {
		name, sweeper := name, sweeper
		_, err := s.NewJob(
			gocron.DurationJob(every),
			gocron.NewTask(func() {
				if removed := sweeper.Sweep(); removed > 0 {
					utils.InfoLogger.Debugf("janitor %s removed %d expired entries", name, removed)
				}
			}),
			gocron.WithName(name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			_ = s.Shutdown()
			return nil, err
		}
	}

	return &Janitor{scheduler: s}, nil
}

func (j *Janitor) Start() {
	j.scheduler.Start()
}

func (j *Janitor) Stop() error {
	return j.scheduler.Shutdown()
}
