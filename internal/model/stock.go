package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock is the inventory ledger entry for one (product, warehouse) pair.
// At most one live row exists per pair (composite unique index). Quantity
// must never go below zero: every mutation happens inside a transaction
// that also writes a TransactionLog row, and decrements use a guarded
// UPDATE so concurrent orders cannot both drain the same row.
type Stock struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_warehouse"`
	WarehouseID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_warehouse"`
	Quantity            decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ApprovisionnementID *uuid.UUID      `gorm:"type:uuid"` // last replenishment, if any
	LastUpdated         time.Time       `gorm:"not null"`

	Product   *Product   `gorm:"foreignKey:ProductID"`
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID"`
}

func (Stock) TableName() string { return "stocks" }

// Value returns quantity × unit price for inventory valuation.
func (s *Stock) Value() decimal.Decimal {
	return s.Quantity.Mul(s.UnitPrice)
}
