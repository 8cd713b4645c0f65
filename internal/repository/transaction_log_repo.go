package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Strife-cyber/agro/internal/model"
)

// TransactionLogRepository is the append-only audit trail. There are no
// update or delete methods on purpose.
type TransactionLogRepository interface {
	Create(ctx context.Context, entry *model.TransactionLog) error
	CreateTx(tx *gorm.DB, entry *model.TransactionLog) error
	// ListRecentByEntityType returns the most recent entries for one
	// entity type since the given time, newest first, capped at limit.
	ListRecentByEntityType(ctx context.Context, entityType string, since time.Time, limit int) ([]model.TransactionLog, error)
}

type transactionLogRepo struct{ db *gorm.DB }

func NewTransactionLogRepository(db *gorm.DB) TransactionLogRepository {
	return &transactionLogRepo{db: db}
}

func (r *transactionLogRepo) Create(ctx context.Context, entry *model.TransactionLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *transactionLogRepo) CreateTx(tx *gorm.DB, entry *model.TransactionLog) error {
	return tx.Create(entry).Error
}

func (r *transactionLogRepo) ListRecentByEntityType(ctx context.Context, entityType string, since time.Time, limit int) ([]model.TransactionLog, error) {
	if limit < 1 {
		limit = 50
	}
	var entries []model.TransactionLog
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND created_at >= ?", entityType, since).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
