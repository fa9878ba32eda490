package repository

import (
	"context"
	"strings"

	"retailpos/internal/model"

	"gorm.io/gorm"
)

// CustomerWithSales is a customer row plus the number of sales that
// reference it.
type CustomerWithSales struct {
	model.Customer `gorm:"embedded"`
	SalesCount     int64
}

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id uint) (*model.Customer, error)
	ListWithSalesCount(ctx context.Context) ([]CustomerWithSales, error)
	// Search matches term as a case-insensitive substring of name, phone,
	// email or address.
	Search(ctx context.Context, term string) ([]model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id uint) error
	CountSales(ctx context.Context, id uint) (int64, error)

	FindByIDTx(tx *gorm.DB, id uint) (*model.Customer, error)
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) FindByID(ctx context.Context, id uint) (*model.Customer, error) {
	return r.FindByIDTx(r.db.WithContext(ctx), id)
}

func (r *customerRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Customer, error) {
	var c model.Customer
	if err := tx.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) ListWithSalesCount(ctx context.Context) ([]CustomerWithSales, error) {
	var rows []CustomerWithSales
	err := r.db.WithContext(ctx).
		Model(&model.Customer{}).
		Select("customers.*, (SELECT COUNT(*) FROM sales WHERE sales.customer_id = customers.id) AS sales_count").
		Order("customers.created_at DESC").
		Order("customers.id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *customerRepo) Search(ctx context.Context, term string) ([]model.Customer, error) {
	var list []model.Customer
	like := "%" + strings.ToLower(term) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(email) LIKE ? OR LOWER(address) LIKE ?",
			like, like, like, like).
		Order("created_at DESC").
		Order("id DESC").
		Find(&list).Error
	return list, err
}

func (r *customerRepo) Update(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *customerRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Customer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *customerRepo) CountSales(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).Where("customer_id = ?", id).Count(&n).Error
	return n, err
}
