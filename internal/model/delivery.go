package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	DeliveryStatusAssigned  = "assigned"
	DeliveryStatusInTransit = "in_transit"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusFailed    = "failed"
)

// Delivery tracks the shipment of one order (at most one per order).
// Created only when the order requested delivery; tracking is a status
// field, no routing logic.
type Delivery struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID      uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	DriverID     *uuid.UUID `gorm:"type:uuid;index"`
	Status       string     `gorm:"not null;default:'assigned'"`
	DeliveryDate *time.Time
	ETA          *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Order  *Order `gorm:"foreignKey:OrderID"`
	Driver *User  `gorm:"foreignKey:DriverID"`
}

func (Delivery) TableName() string { return "deliveries" }
