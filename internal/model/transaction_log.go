package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Entity types used in audit entries. EntityStocks is queried by the
// stock report, the others exist for trail consistency.
const (
	EntityStocks             = "stocks"
	EntityOrders             = "orders"
	EntityApprovisionnements = "approvisionnements"
	EntityPayments           = "payments"
)

// TransactionLog is the append-only audit record. One row per mutating
// workflow step, written inside the same transaction as the mutation
// wherever the ledger is touched. Never updated or deleted.
type TransactionLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntityType string    `gorm:"not null;index"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Action     string    `gorm:"not null"` // CREATE | UPDATE | DELETE
	UserID     uuid.UUID `gorm:"type:uuid;not null"`
	Details    string
	CreatedAt  time.Time `gorm:"index"`
}

func (TransactionLog) TableName() string { return "transaction_logs" }
