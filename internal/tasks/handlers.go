package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"stockroom/internal/apperr"
	"stockroom/internal/feed"
	"stockroom/internal/notify"
	"stockroom/internal/reports"
	"stockroom/internal/repository"
	"stockroom/internal/utils/logger"

	"github.com/hibiken/asynq"
)

// TaskHandler processes the queued and scheduled work.
type TaskHandler struct {
	store   repository.Store
	mailer  *notify.Mailer
	feed    *feed.Feed
	reports *reports.Generator
	logger  *logger.Logger
}

func NewTaskHandler(store repository.Store, mailer *notify.Mailer, productFeed *feed.Feed, generator *reports.Generator) *TaskHandler {
	return &TaskHandler{
		store:   store,
		mailer:  mailer,
		feed:    productFeed,
		reports: generator,
		logger:  logger.New("task_handler"),
	}
}

// HandleActivationEmail loads the employee and delivers the activation
// message. An already active or deleted employee skips the send.
func (h *TaskHandler) HandleActivationEmail(ctx context.Context, t *asynq.Task) error {
	var payload ActivationEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal activation payload: %v: %w", err, asynq.SkipRetry)
	}

	employee, err := h.store.Repos().Employees.FindByID(ctx, payload.EmployeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		h.logger.Warn("activation email for missing employee %d, skipping", payload.EmployeeID)
		return nil
	}
	if employee.Active {
		h.logger.Info("employee %d already active, skipping activation email", employee.ID)
		return nil
	}

	return h.mailer.SendActivationEmail(ctx, employee, payload.ActivationToken)
}

// HandleFeedStart switches the product feed on.
func (h *TaskHandler) HandleFeedStart(ctx context.Context, t *asynq.Task) error {
	return h.feed.Start(ctx)
}

// HandleFeedStop switches the product feed off.
func (h *TaskHandler) HandleFeedStop(ctx context.Context, t *asynq.Task) error {
	return h.feed.Stop(ctx)
}

// HandleProductsReport builds and uploads the daily inventory report.
func (h *TaskHandler) HandleProductsReport(ctx context.Context, t *asynq.Task) error {
	url, err := h.reports.ShareProductsReport(ctx)
	if err != nil {
		if apperr.KindOf(err) != "" {
			h.logger.Warn("products report not generated: %v", err)
			return nil
		}
		return err
	}
	h.logger.Success("products report available at %s", url)
	return nil
}
