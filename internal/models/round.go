package models

import "gorm.io/gorm"

// Round records one completed play: the secret word and the round-scoped
// impostor submitted by the client after the round is over. Rows are
// append-only; nothing in the request path updates or deletes them.
type Round struct {
	gorm.Model

	GameID           uint  `gorm:"not null;index"`
	WordID           uint  `gorm:"not null;index"`
	ImpostorPlayerID uint  `gorm:"not null;index"`
	StarterPlayerID  *uint // optional "who goes first", display only

	// Relationships
	Game     Game    `gorm:"foreignKey:GameID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Word     Word    `gorm:"foreignKey:WordID"`
	Impostor Player  `gorm:"foreignKey:ImpostorPlayerID"`
	Starter  *Player `gorm:"foreignKey:StarterPlayerID"`
}
