package models

import "gorm.io/gorm"

type Game struct {
	gorm.Model

	UserID     uint `gorm:"not null;index"`
	CategoryID uint `gorm:"not null;index"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Players  []Player `gorm:"foreignKey:GameID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Rounds   []Round  `gorm:"foreignKey:GameID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
