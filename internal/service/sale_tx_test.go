package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"retailpos/internal/dto"
	"retailpos/internal/infra"
	"retailpos/internal/model"
	"retailpos/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSaleDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "pos.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

func TestSaleService_Create_FailedItemWriteLeavesNoSale(t *testing.T) {
	ctx := context.Background()
	db := openSaleDB(t)

	cashier := &model.User{Email: "ana@shop.test", Name: "Ana", PasswordHash: "x", Role: model.RoleCashier}
	require.NoError(t, db.Create(cashier).Error)
	product := &model.Product{Name: "Coffee", Price: decimal.RequireFromString("12.99"), Active: true}
	require.NoError(t, db.Create(product).Error)

	svc := NewSaleService(
		repository.NewSaleRepository(db),
		repository.NewProductRepository(db),
		repository.NewUserRepository(db),
		repository.NewCustomerRepository(db),
		nil,
	)
	req := dto.CreateSaleRequest{
		InvoiceNumber: "INV-1",
		OrderNumber:   "ORD-1",
		TaxRate:       decimal.RequireFromString("0.1"),
		Items: []dto.SaleItemRequest{
			{ProductID: product.ID, Quantity: 2},
			{ProductID: 999, Quantity: 5},
		},
	}

	sale, err := svc.Create(ctx, cashier.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "28.58", sale.Total.StringFixed(2))
	assert.Equal(t, []uint{999}, sale.DroppedProductIDs)

	errDiskFull := errors.New("disk full")
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_sale_items", func(tx *gorm.DB) {
		if tx.Statement.Table == "sale_items" {
			_ = tx.AddError(errDiskFull)
		}
	}))

	req.InvoiceNumber = "INV-2"
	_, err = svc.Create(ctx, cashier.ID, req)
	require.ErrorIs(t, err, errDiskFull)

	// Only the first sale and its single line survive.
	assert.Equal(t, int64(1), countRows(t, db, &model.Sale{}))
	assert.Equal(t, int64(1), countRows(t, db, &model.SaleItem{}))
	var invoices []string
	require.NoError(t, db.Model(&model.Sale{}).Pluck("invoice_number", &invoices).Error)
	assert.Equal(t, []string{"INV-1"}, invoices)
}

func TestSaleService_Create_UnknownCustomerWritesNothing(t *testing.T) {
	ctx := context.Background()
	db := openSaleDB(t)

	cashier := &model.User{Email: "ana@shop.test", Name: "Ana", PasswordHash: "x", Role: model.RoleCashier}
	require.NoError(t, db.Create(cashier).Error)
	product := &model.Product{Name: "Tea", Price: decimal.RequireFromString("3.50"), Active: true}
	require.NoError(t, db.Create(product).Error)

	svc := NewSaleService(
		repository.NewSaleRepository(db),
		repository.NewProductRepository(db),
		repository.NewUserRepository(db),
		repository.NewCustomerRepository(db),
		nil,
	)
	missing := uint(42)
	_, err := svc.Create(ctx, cashier.ID, dto.CreateSaleRequest{
		InvoiceNumber: "INV-1",
		OrderNumber:   "ORD-1",
		CustomerID:    &missing,
		Items:         []dto.SaleItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Zero(t, countRows(t, db, &model.Sale{}))
	assert.Zero(t, countRows(t, db, &model.SaleItem{}))
}
