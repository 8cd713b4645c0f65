package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment is a settlement record: exactly one of OrderID or
// ApprovisionnementID is set. Client direct payments are created already
// completed; credit payments and all supplier payments start pending.
// No gateway is called — this is a status-only stub.
type Payment struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID             *uuid.UUID      `gorm:"type:uuid;index"`
	ApprovisionnementID *uuid.UUID      `gorm:"type:uuid;index"`
	Amount              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod       string          `gorm:"not null"`
	Status              string          `gorm:"not null;default:'pending'"`
	PaymentDate         time.Time       `gorm:"not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
