package notify

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/salon-queue/internal/metrics"
)

// TaskHandler consumes customer-called tasks in the worker process.
type TaskHandler struct {
	sender Sender
}

func NewTaskHandler(sender Sender) *TaskHandler {
	return &TaskHandler{sender: sender}
}

func (h *TaskHandler) HandleCustomerCalled(ctx context.Context, t *asynq.Task) error {
	var n Notification
	if err := json.Unmarshal(t.Payload(), &n); err != nil {
		// a broken payload will never succeed
		return errors.Wrapf(asynq.SkipRetry, "decode payload: %v", err)
	}

	if !n.Deliverable() {
		zlog.Info().Str("entry_id", n.EntryID).Msg("no phone on file, notification skipped")
		metrics.Notifications.WithLabelValues("sms", "skipped").Inc()
		return nil
	}

	if err := h.sender.Send(ctx, n.Phone, n.Message); err != nil {
		metrics.Notifications.WithLabelValues("sms", "error").Inc()
		return err
	}

	metrics.Notifications.WithLabelValues("sms", "ok").Inc()
	return nil
}

func (h *TaskHandler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeCustomerCalled, h.HandleCustomerCalled)
}
