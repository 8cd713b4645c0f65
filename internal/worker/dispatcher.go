package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueNotifications = "jobs:notifications"
	QueueEmail         = "jobs:email"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// NotificationJobPayload asks the notification worker to persist (and,
// for email type, deliver) one message. Enqueued by the workflow services
// strictly after their transaction has committed.
type NotificationJobPayload struct {
	UserID  string `json:"user_id"`
	Type    string `json:"type"` // email | sms
	Message string `json:"message"`
}

// EmailJobPayload is a direct outbound email, already resolved to an address.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Dispatcher enqueues async jobs into Redis lists; the worker pool
// dequeues them via BRPOP. Enqueue failures are logged and swallowed —
// notifications are fire-and-forget and must never fail the caller.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// Notify enqueues a notification for a user. Best-effort.
func (d *Dispatcher) Notify(ctx context.Context, userID, notifType, message string) {
	payload := NotificationJobPayload{UserID: userID, Type: notifType, Message: message}
	if err := d.enqueue(ctx, QueueNotifications, "notification", payload); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("dispatcher: failed to enqueue notification")
	}
}

// EnqueueEmail pushes an email job. Best-effort.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) {
	if err := d.enqueue(ctx, QueueEmail, "email", payload); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("dispatcher: failed to enqueue email")
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	// Detach from the request context: the commit already happened, an
	// aborted request must not drop the notification.
	enqueueCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	return d.rdb.LPush(enqueueCtx, queue, encoded).Err()
}
