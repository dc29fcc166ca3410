package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSchedule matches the dashboard refresh interval.
const DefaultSchedule = "@every 2m"

var ErrNoJob = errors.New("scheduler: job not set")

// Job is one scheduled unit of work. A returned error is logged and the next
// tick still fires.
type Job func(ctx context.Context) error

// Scheduler runs a single job once on Start and then on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	ctx      context.Context
	cancel   context.CancelFunc
	job      Job
	logger   *zap.Logger

	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

func New(schedule string, logger *zap.Logger) *Scheduler {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		schedule: schedule,
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger,
	}
}

func (s *Scheduler) SetJob(job Job) {
	s.job = job
}

// Start registers the job, fires it immediately and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.job == nil {
		return ErrNoJob
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.logger.Debug("scheduled run", zap.String("schedule", s.schedule))
		s.run()
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.RunNow()
	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("schedule", s.schedule))
	return nil
}

// RunNow fires the job out of band. It is a no-op once stopped.
func (s *Scheduler) RunNow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.job == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run()
	}()
}

func (s *Scheduler) run() {
	if s.ctx.Err() != nil {
		return
	}
	if err := s.job(s.ctx); err != nil {
		s.logger.Warn("scheduled job failed", zap.Error(err))
	}
}

// Stop cancels in-flight work and waits for it to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running && len(s.cron.Entries()) > 0
}
