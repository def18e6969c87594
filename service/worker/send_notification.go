package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/db"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/notify"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/util"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const SendNotification = "send-notification"

type SendNotificationPayload struct {
	PromoterID uuid.UUID `json:"promoter_id"`
	EventID    string    `json:"event_id,omitempty"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Email      string    `json:"email,omitempty"` // when set, also send an email rendition
}

// Persist a notification feed entry, push it on the promoter's channel and
// optionally email it
func (processor *RedisTaskProcessor) HandleSendNotification(ctx context.Context, task *asynq.Task) error {
	var payload SendNotificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	notification := &db.Notification{
		Model:      db.NewModel(),
		PromoterID: payload.PromoterID,
		EventID:    payload.EventID,
		Title:      payload.Title,
		Body:       payload.Body,
		Status:     db.NotificationQueued,
	}
	if err := processor.queries.CreateNotification(notification); err != nil {
		return fmt.Errorf("failed to persist notification: %w", err)
	}

	// In-app push on the promoter's channel
	err := processor.ablyService.Publish(ctx, notify.PromoterChannel(payload.PromoterID.String()), "notification", map[string]any{
		"id":    notification.ID,
		"title": payload.Title,
		"body":  payload.Body,
	})

	status := db.NotificationSent
	if err != nil {
		util.LOGGER.Error("failed to publish in-app notification", "promoter_id", payload.PromoterID, "error", err)
		status = db.NotificationFailed
	}

	if err := processor.queries.DB.Model(notification).Update("status", status).Error; err != nil {
		util.LOGGER.Warn("failed to update notification status", "notification_id", notification.ID, "error", err)
	}

	// Email rendition is best effort
	if payload.Email != "" {
		if err := processor.mailService.SendEmail(payload.Email, payload.Title, payload.Body); err != nil {
			util.LOGGER.Warn("failed to send notification email", "email", payload.Email, "error", err)
		}
	}

	return nil
}
