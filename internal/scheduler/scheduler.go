package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Pruner drops expired entries and reports how many it removed.
type Pruner interface {
	Prune(now time.Time) int
}

// Scheduler periodically sweeps idle dashboard sessions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pruner    Pruner
	interval  time.Duration
}

// New creates a new Scheduler.
func New(pruner Pruner, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		pruner:    pruner,
		interval:  interval,
	}
}

// Start schedules the sweep and starts the underlying scheduler.
// A non-positive interval disables sweeping.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: session sweep disabled")
		return nil
	}

	seconds := int(s.interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}

	_, err := s.scheduler.Every(seconds).Seconds().Do(s.Sweep)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Sweep runs one prune pass.
func (s *Scheduler) Sweep() {
	if removed := s.pruner.Prune(time.Now()); removed > 0 {
		log.Printf("scheduler: pruned %d idle sessions", removed)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
