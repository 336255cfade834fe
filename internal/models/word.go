package models

import "gorm.io/gorm"

type Word struct {
	gorm.Model

	Text       string `gorm:"not null"`
	CategoryID uint   `gorm:"not null;index"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Rounds   []Round  `gorm:"foreignKey:WordID"`
}
