package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/veritas-cms/veritas-cms/internal/jobs"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeEnquiryNotify is the task type for new-enquiry notifications.
	TaskTypeEnquiryNotify = "enquiry:notify"
)

// EnquiryNotifyPayload carries the enquiry details for the notification mail.
type EnquiryNotifyPayload struct {
	EnquiryID  string    `json:"enquiryId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// NewEnquiryNotifyTask constructs an Asynq task.
func NewEnquiryNotifyTask(payload EnquiryNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeEnquiryNotify, data), nil
}

// NewEnquiryNotifyHandler returns the handler for TaskTypeEnquiryNotify.
// Mail goes to notifyTo through the mailer; a malformed payload is dropped
// rather than retried.
func NewEnquiryNotifyHandler(mailer *Mailer, notifyTo string, metrics *jobmetrics.Metrics, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track("enquiry_notify")
		var payload EnquiryNotifyPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			if logger != nil {
				logger.Warn("enquiry notify: bad payload", slog.Any("error", err))
			}
			_ = tracker.End(err)
			return asynq.SkipRetry
		}
		subject := fmt.Sprintf("New enquiry from %s %s", payload.FirstName, payload.LastName)
		body := fmt.Sprintf(
			"A new enquiry was received at %s.\n\nName: %s %s\nEmail: %s\nPhone: %s\n\n%s\n",
			payload.ReceivedAt.Format(time.RFC1123),
			payload.FirstName, payload.LastName, payload.Email, payload.Phone, payload.Message,
		)
		if err := tracker.End(mailer.Send(notifyTo, subject, body)); err != nil {
			return err
		}
		if logger != nil {
			logger.Info("enquiry notification delivered",
				slog.String("enquiry_id", payload.EnquiryID),
				slog.String("to", notifyTo))
		}
		return nil
	}
}
