package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a completed checkout. Amounts are fixed at creation:
// Subtotal = Σ Items.LineTotal and Total = Subtotal + Tax.
type Sale struct {
	ID            uint            `gorm:"primaryKey"`
	InvoiceNumber string          `gorm:"type:varchar(64);not null"`
	OrderNumber   string          `gorm:"type:varchar(64);not null"`
	CashierID     uint            `gorm:"not null;index"`
	Cashier       *User           `gorm:"foreignKey:CashierID;constraint:OnDelete:RESTRICT"`
	CustomerID    *uint           `gorm:"index"`
	Customer      *Customer       `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	Items         []SaleItem      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Tax           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt     time.Time       `gorm:"index"`
}

func (Sale) TableName() string { return "sales" }

// SaleItem snapshots the unit price at the moment of sale.
type SaleItem struct {
	ID        uint            `gorm:"primaryKey"`
	SaleID    uint            `gorm:"not null;index"`
	ProductID uint            `gorm:"not null;index"`
	Product   *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (SaleItem) TableName() string { return "sale_items" }
