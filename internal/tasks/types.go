package tasks

import "time"

// Task Types
const (
	TaskTypeActivationEmail = "email:activation"
	TaskTypeProductsReport  = "report:products"
	TaskTypeFeedStart       = "feed:start"
	TaskTypeFeedStop        = "feed:stop"
)

// Task Queues
const (
	QueueCritical = "critical" // For time-sensitive tasks like email sending
	QueueDefault  = "default"  // For regular tasks
	QueueLow      = "low"      // For background tasks like reports
)

// Cron specs for the periodic tasks.
const (
	FeedStartSpec      = "0 0 * * *"  // midnight
	FeedStopSpec       = "5 0 * * *"  // five past midnight
	ProductsReportSpec = "30 0 * * *" // half past midnight
)

// Task Timeouts
const (
	TimeoutShort  = 1 * time.Minute
	TimeoutMedium = 5 * time.Minute
	TimeoutLong   = 30 * time.Minute
)

// Task Retry Settings
const (
	RetryMax     = 5
	RetryDefault = 3
	RetryMin     = 1
)

// ActivationEmailPayload carries the employee and the single-use token
// for the activation message.
type ActivationEmailPayload struct {
	EmployeeID      uint   `json:"employee_id"`
	ActivationToken string `json:"activation_token"`
}
