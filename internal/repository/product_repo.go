package repository

import (
	"context"
	"fmt"

	"retailpos/internal/model"

	"gorm.io/gorm"
)

// ProductQuery selects one page of the catalog. Category is preloaded only
// when WithCategory is set.
type ProductQuery struct {
	Page         int
	Limit        int
	WithCategory bool
}

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uint, withCategory bool) (*model.Product, error)
	List(ctx context.Context, q ProductQuery) ([]model.Product, int64, error)
	ListActive(ctx context.Context, withCategory bool) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	// Delete fails with gorm.ErrForeignKeyViolated when sale items reference
	// the product, whatever the backend reports.
	Delete(ctx context.Context, id uint) error
	// DeleteWithoutImage removes every product whose image is NULL and
	// returns the removed ids. Nothing is removed if any of them is sold.
	DeleteWithoutImage(ctx context.Context) ([]uint, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Count(ctx context.Context) (int64, error)

	// Used inside transactions: callers must pass the tx instance
	FindByIDsTx(tx *gorm.DB, ids []uint) ([]model.Product, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Omit("Category").Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uint, withCategory bool) (*model.Product, error) {
	var p model.Product
	q := r.db.WithContext(ctx)
	if withCategory {
		q = q.Preload("Category")
	}
	if err := q.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, pq ProductQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx)
	if pq.WithCategory {
		q = q.Preload("Category")
	}
	offset := (pq.Page - 1) * pq.Limit
	err := q.Order("id DESC").Limit(pq.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) ListActive(ctx context.Context, withCategory bool) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).Where("active = ?", true)
	if withCategory {
		q = q.Preload("Category")
	}
	err := q.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Omit("Category").Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := referencedBySales(tx, []uint{id}); err != nil {
			return err
		}
		res := tx.Delete(&model.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *productRepo) DeleteWithoutImage(ctx context.Context) ([]uint, error) {
	ids := make([]uint, 0)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).Where("image IS NULL").Order("id").Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := referencedBySales(tx, ids); err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&model.Product{}).Error
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// referencedBySales fails with gorm.ErrForeignKeyViolated when any of ids
// appears on a sale item. SQLite's RESTRICT error is not translated by gorm.
func referencedBySales(tx *gorm.DB, ids []uint) error {
	var sold []uint
	err := tx.Model(&model.SaleItem{}).
		Where("product_id IN ?", ids).
		Distinct("product_id").
		Order("product_id").
		Pluck("product_id", &sold).Error
	if err != nil {
		return err
	}
	if len(sold) > 0 {
		return fmt.Errorf("products %v are referenced by sale items: %w", sold, gorm.ErrForeignKeyViolated)
	}
	return nil
}

func (r *productRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Where("name = ?", name).Count(&n).Error
	return n > 0, err
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&n).Error
	return n, err
}

// FindByIDsTx resolves a batch of ids in a single query. Unknown ids are
// simply absent from the result.
func (r *productRepo) FindByIDsTx(tx *gorm.DB, ids []uint) ([]model.Product, error) {
	products := make([]model.Product, 0, len(ids))
	if len(ids) == 0 {
		return products, nil
	}
	err := tx.Where("id IN ?", ids).Find(&products).Error
	return products, err
}
