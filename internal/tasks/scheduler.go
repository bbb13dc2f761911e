package tasks

import (
	"fmt"

	"stockroom/internal/utils/logger"

	"github.com/hibiken/asynq"
)

// Scheduler registers the periodic tasks: the feed window at midnight
// and the nightly products report.
type Scheduler struct {
	scheduler *asynq.Scheduler
	logger    *logger.Logger
}

// NewScheduler creates a new task scheduler
func NewScheduler(redisAddr, password string, db int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		},
		&asynq.SchedulerOpts{},
	)

	return &Scheduler{
		scheduler: scheduler,
		logger:    logger.New("task_scheduler"),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	if err := s.registerTasks(); err != nil {
		return fmt.Errorf("failed to register tasks: %w", err)
	}

	s.logger.Info("starting task scheduler")
	return s.scheduler.Run()
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Shutdown()
	s.logger.Info("task scheduler stopped")
}

// registerTasks registers all periodic tasks
func (s *Scheduler) registerTasks() error {
	entries := []struct {
		spec     string
		taskType string
		queue    string
	}{
		{FeedStartSpec, TaskTypeFeedStart, QueueDefault},
		{FeedStopSpec, TaskTypeFeedStop, QueueDefault},
		{ProductsReportSpec, TaskTypeProductsReport, QueueLow},
	}

	for _, e := range entries {
		task := asynq.NewTask(e.taskType, nil, asynq.Queue(e.queue), asynq.MaxRetry(RetryDefault))
		entryID, err := s.scheduler.Register(e.spec, task)
		if err != nil {
			return fmt.Errorf("failed to register %s: %w", e.taskType, err)
		}
		s.logger.Info("registered periodic task %s %s %s", e.taskType, e.spec, entryID)
	}
	return nil
}
