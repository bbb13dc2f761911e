package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"stockroom/internal/models"
	"stockroom/internal/utils/logger"

	"github.com/hibiken/asynq"
)

// TaskClient enqueues background work. It also backs the employee
// service's activation notifier.
type TaskClient struct {
	client *asynq.Client
	logger *logger.Logger
}

// NewTaskClient creates a new TaskClient with the given Redis configuration
func NewTaskClient(redisAddr, password string, db int) *TaskClient {
	redisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	}

	return &TaskClient{
		client: asynq.NewClient(redisOpt),
		logger: logger.New("TASKS"),
	}
}

// Close closes the underlying asynq client
func (c *TaskClient) Close() error {
	return c.client.Close()
}

// SendActivationEmail queues the activation message on the critical
// queue so registration never waits on SMTP.
func (c *TaskClient) SendActivationEmail(ctx context.Context, employee *models.Employee, activationToken string) error {
	payload, err := json.Marshal(ActivationEmailPayload{
		EmployeeID:      employee.ID,
		ActivationToken: activationToken,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal activation payload: %w", err)
	}

	task := asynq.NewTask(TaskTypeActivationEmail, payload,
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(RetryMax),
		asynq.Timeout(TimeoutShort),
	)
	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue activation email: %w", err)
	}

	c.logger.Info("enqueued activation email for employee %d task=%s", employee.ID, info.ID)
	return nil
}
