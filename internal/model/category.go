package model

import "time"

// Category groups products for the storefront menu. Image is a path under
// the uploads directory, served statically.
type Category struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"type:varchar(100);not null"`
	Image     *string `gorm:"type:varchar(255)"`
	Active    bool    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Category) TableName() string { return "categories" }
