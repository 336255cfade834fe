package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model

	Name        string `gorm:"not null;uniqueIndex"`
	Description string
	IsDefault   bool   `gorm:"not null;default:false"`
	Color       string `gorm:"size:7"`
	Icon        string `gorm:"size:50"`
	UserID      *uint  `gorm:"index"` // NULL means the category is global

	// Relationships
	User  *User  `gorm:"foreignKey:UserID"`
	Words []Word `gorm:"foreignKey:CategoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Games []Game `gorm:"foreignKey:CategoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// IsPublic reports whether the category is visible to every user.
func (c *Category) IsPublic() bool {
	return c.UserID == nil || c.IsDefault
}
