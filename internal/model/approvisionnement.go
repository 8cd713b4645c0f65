package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Approvisionnement lifecycle states. Transitions are one-directional:
// pending → validated_bd → received, with rejected reachable from pending
// (business developer) or validated_bd (stock manager). rejected and
// received are terminal.
const (
	ApproStatusPending     = "pending"
	ApproStatusValidatedBD = "validated_bd"
	ApproStatusRejected    = "rejected"
	ApproStatusReceived    = "received"
)

// Approvisionnement is a supplier's proposal to deliver a quantity of one
// product to one warehouse at a proposed price. BusinessDeveloperID and
// StockManagerID record which actor authorized which half of the
// two-step validation gate.
type Approvisionnement struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplierID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity            decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	ProposedPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DeliveryDate        time.Time       `gorm:"not null"`
	Status              string          `gorm:"not null;default:'pending';index"`
	BusinessDeveloperID *uuid.UUID      `gorm:"type:uuid"`
	StockManagerID      *uuid.UUID      `gorm:"type:uuid"`
	RejectionReason     *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Supplier  *User      `gorm:"foreignKey:SupplierID"`
	Product   *Product   `gorm:"foreignKey:ProductID"`
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID"`
}

func (Approvisionnement) TableName() string { return "approvisionnements" }

// Terminal reports whether the record can no longer change state.
func (a *Approvisionnement) Terminal() bool {
	return a.Status == ApproStatusRejected || a.Status == ApproStatusReceived
}
