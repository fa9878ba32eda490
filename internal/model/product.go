package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. Category is only populated when the
// caller asks the repository to preload it.
type Product struct {
	ID         uint            `gorm:"primaryKey"`
	Name       string          `gorm:"type:varchar(150);not null;index"`
	CategoryID *uint           `gorm:"index"`
	Category   *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Active     bool            `gorm:"not null;index"`
	Image      *string         `gorm:"type:varchar(255)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Product) TableName() string { return "products" }
