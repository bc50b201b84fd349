package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/firmanfarelrichardo/weather-dashboard/internal/app"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/logx"
)

// Refresher re-fetches whatever city is currently displayed.
type Refresher interface {
	Refresh(ctx context.Context) (*app.Dashboard, error)
}

// Scheduler periodically refreshes the dashboard so displayed conditions do
// not go stale between user actions.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	controller Refresher
	interval   time.Duration
	logger     logx.Logger
}

// New creates a Scheduler. An interval of 0 disables refreshing.
func New(controller Refresher, interval time.Duration, logger logx.Logger) *Scheduler {
	if logger == nil {
		logger = logx.Nop{}
	}
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.UTC),
		controller: controller,
		interval:   interval,
		logger:     logger,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Infof("scheduler: auto-refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.controller.Refresh(ctx); err != nil {
			s.logger.Warnf("scheduler: refresh failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
