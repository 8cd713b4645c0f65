package worker

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Strife-cyber/agro/internal/model"
	"github.com/Strife-cyber/agro/internal/repository"
)

// NotificationWorker persists notification rows. For email
// notifications it chains an email job so delivery happens on the email
// queue without blocking this one. All failures are logged only — the
// triggering workflow already committed.
type NotificationWorker struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	dispatcher    *Dispatcher
}

func NewNotificationWorker(
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	dispatcher *Dispatcher,
) *NotificationWorker {
	return &NotificationWorker{notifications: notifications, users: users, dispatcher: dispatcher}
}

func (w *NotificationWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload NotificationJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notification_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}

	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		log.Error().Str("user_id", payload.UserID).Msg("notification_worker: invalid user id")
		return nil
	}

	notifType := payload.Type
	if notifType != model.NotificationTypeEmail && notifType != model.NotificationTypeSMS {
		notifType = model.NotificationTypeEmail
	}

	n := &model.Notification{
		UserID:  userID,
		Type:    notifType,
		Message: payload.Message,
		Status:  model.NotificationStatusPending,
	}
	if err := w.notifications.Create(ctx, n); err != nil {
		return err
	}

	if notifType == model.NotificationTypeEmail {
		user, err := w.users.FindByID(ctx, userID)
		if err != nil {
			log.Warn().Str("user_id", payload.UserID).Msg("notification_worker: recipient not found, row kept pending")
			return nil
		}
		w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
			ToEmail: user.Email,
			Subject: "Agro notification",
			Body:    payload.Message,
		})
	}

	if err := w.notifications.UpdateStatus(ctx, n.ID, model.NotificationStatusSent); err != nil {
		log.Error().Err(err).Str("notification_id", n.ID.String()).Msg("notification_worker: status update failed")
	}
	return nil
}
