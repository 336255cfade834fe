package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuthToken is a revocable API token. Only a SHA-256 digest of the token is
// stored; the plaintext is returned to the client once at issue time.
type AuthToken struct {
	gorm.Model

	UserID     uint           `gorm:"not null;index"`
	Name       string         `gorm:"not null"`
	TokenHash  string         `gorm:"uniqueIndex;not null;size:64"`
	Abilities  datatypes.JSON `gorm:"type:jsonb"`
	LastUsedAt *time.Time

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
