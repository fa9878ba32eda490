package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID uint `json:"product_id" validate:"required,gt=0"`
	Quantity  int  `json:"quantity"   validate:"required,gt=0"`
}

// CreateSaleRequest is the cart submitted by a cashier. TaxRate is a fraction
// (0.1 = 10%) and defaults to zero.
type CreateSaleRequest struct {
	InvoiceNumber string            `json:"invoice_number" validate:"required,max=64"`
	OrderNumber   string            `json:"order_number"   validate:"required,max=64"`
	CustomerID    *uint             `json:"customer_id"    validate:"omitempty,gt=0"`
	TaxRate       decimal.Decimal   `json:"tax_rate"       validate:"gte=0"`
	Items         []SaleItemRequest `json:"items"          validate:"dive"`
}

type HistoryFilter struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ID        uint             `json:"id"`
	ProductID uint             `json:"product_id"`
	Product   *ProductResponse `json:"product,omitempty"`
	Quantity  int              `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	LineTotal decimal.Decimal  `json:"line_total"`
}

type SaleResponse struct {
	ID                uint               `json:"id"`
	InvoiceNumber     string             `json:"invoice_number"`
	OrderNumber       string             `json:"order_number"`
	CashierID         uint               `json:"cashier_id"`
	Cashier           *UserResponse      `json:"cashier,omitempty"`
	CustomerID        *uint              `json:"customer_id"`
	Customer          *CustomerResponse  `json:"customer,omitempty"`
	Items             []SaleItemResponse `json:"items"`
	Subtotal          decimal.Decimal    `json:"subtotal"`
	Tax               decimal.Decimal    `json:"tax"`
	Total             decimal.Decimal    `json:"total"`
	CreatedAt         time.Time          `json:"created_at"`
	DroppedProductIDs []uint             `json:"dropped_product_ids,omitempty"`
}

type TodaySummaryResponse struct {
	TotalSales decimal.Decimal `json:"total_sales"`
	OrderCount int64           `json:"order_count"`
	AvgTicket  decimal.Decimal `json:"avg_ticket"`
}

// SaleCSVRow is one line of the history export.
type SaleCSVRow struct {
	ID            uint   `csv:"id"`
	CreatedAt     string `csv:"created_at"`
	InvoiceNumber string `csv:"invoice_number"`
	OrderNumber   string `csv:"order_number"`
	Cashier       string `csv:"cashier"`
	Customer      string `csv:"customer"`
	ItemCount     int    `csv:"items"`
	Subtotal      string `csv:"subtotal"`
	Tax           string `csv:"tax"`
	Total         string `csv:"total"`
}
