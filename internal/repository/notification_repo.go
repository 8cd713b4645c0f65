package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Strife-cyber/agro/internal/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Notification, error)
}

type notificationRepo struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).Update("status", status).Error
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Notification, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}
