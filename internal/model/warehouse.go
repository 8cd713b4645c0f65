package model

import (
	"time"

	"github.com/google/uuid"
)

// Warehouse is a physical storage location receiving supplier stock and
// fulfilling client orders.
type Warehouse struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Address   *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
