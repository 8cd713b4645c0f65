package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Quantities and prices live in the stock
// ledger (one entry per product/warehouse pair), not here.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	CategoryID  *uuid.UUID `gorm:"type:uuid;index"`
	Unit        string     `gorm:"not null;default:'unit'"` // kg | crate | unit
	Active      bool       `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}

// Category groups products for catalog browsing.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Category) TableName() string { return "categories" }
