package repository

import (
	"context"
	"time"

	"retailpos/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleRelations lists the associations a read should load. Nothing is
// loaded unless asked for.
type SaleRelations struct {
	Items   bool // items, item product and product category
	Parties bool // cashier and customer
}

// SaleFilter bounds a history query on created_at (inclusive). A nil bound
// is open.
type SaleFilter struct {
	From *time.Time
	To   *time.Time
	Load SaleRelations
}

// SaleTotals aggregates the sales inside a time window.
type SaleTotals struct {
	Total decimal.Decimal
	Count int64
}

type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uint, load SaleRelations) (*model.Sale, error)
	List(ctx context.Context, filter SaleFilter) ([]model.Sale, error)
	Totals(ctx context.Context, from, to time.Time) (SaleTotals, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

// Create inserts the sale and its items in one statement batch. Associations
// other than Items are never written through a sale.
func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Omit("Cashier", "Customer").Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uint, load SaleRelations) (*model.Sale, error) {
	var s model.Sale
	if err := withSaleRelations(r.db.WithContext(ctx), load).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) List(ctx context.Context, f SaleFilter) ([]model.Sale, error) {
	sales := make([]model.Sale, 0)
	q := withSaleRelations(r.db.WithContext(ctx), f.Load)
	switch {
	case f.From != nil && f.To != nil:
		q = q.Where("created_at BETWEEN ? AND ?", *f.From, *f.To)
	case f.From != nil:
		q = q.Where("created_at >= ?", *f.From)
	case f.To != nil:
		q = q.Where("created_at <= ?", *f.To)
	}
	err := q.Order("created_at DESC").Order("id DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Totals(ctx context.Context, from, to time.Time) (SaleTotals, error) {
	var row struct {
		Total decimal.NullDecimal
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("SUM(total) AS total, COUNT(*) AS count").
		Where("created_at BETWEEN ? AND ?", from, to).
		Scan(&row).Error
	if err != nil {
		return SaleTotals{}, err
	}
	totals := SaleTotals{Total: decimal.Zero, Count: row.Count}
	if row.Total.Valid {
		totals.Total = row.Total.Decimal
	}
	return totals, nil
}

func withSaleRelations(q *gorm.DB, load SaleRelations) *gorm.DB {
	if load.Items {
		q = q.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sale_items.id ASC") }).
			Preload("Items.Product").
			Preload("Items.Product.Category")
	}
	if load.Parties {
		q = q.Preload("Cashier").Preload("Customer")
	}
	return q
}
