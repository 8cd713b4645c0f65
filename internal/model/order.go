package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

const (
	PaymentMethodDirect = "direct"
	PaymentMethodCredit = "credit"
)

// Order is a client purchase against one warehouse's pooled inventory.
// TotalAmount is computed once at creation (Σ quantity × unit_price over
// the items) and never re-derived afterwards.
type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status          string          `gorm:"not null;default:'pending';index"`
	DeliveryOption  bool            `gorm:"not null;default:false"`
	PaymentMethod   string          `gorm:"not null"`
	DeliveryAddress *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items     []OrderItem `gorm:"foreignKey:OrderID"`
	Client    *User       `gorm:"foreignKey:ClientID"`
	Warehouse *Warehouse  `gorm:"foreignKey:WarehouseID"`
}

// OrderItem is one line of an order. Immutable once created.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
