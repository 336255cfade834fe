package models

import "gorm.io/gorm"

const (
	PlayerRoleNormal   = "normal"
	PlayerRoleImpostor = "impostor"
)

// Player is a display name inside one game's roster, not a user account.
// Role is assigned exactly once when the game is created.
type Player struct {
	gorm.Model

	GameID uint   `gorm:"not null;index"`
	Name   string `gorm:"not null"`
	Role   string `gorm:"not null;default:normal"` // "normal" or "impostor"

	// Relationships
	Game           Game    `gorm:"foreignKey:GameID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ImpostorRounds []Round `gorm:"foreignKey:ImpostorPlayerID"`
}
