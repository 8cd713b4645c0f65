package model

import (
	"time"

	"github.com/google/uuid"
)

// User is any actor in the platform: supplier, business developer,
// stock manager, client, driver or admin. The Role string is validated
// against the authz package's role set at login and at seeding time.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName     string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null;index"`
	Phone        *string
	Active       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
