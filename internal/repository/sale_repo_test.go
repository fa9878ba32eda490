package repository

import (
	"context"
	"testing"
	"time"

	"retailpos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type saleSeed struct {
	db      *gorm.DB
	repo    SaleRepository
	cashier *model.User
	product *model.Product
}

func newSaleSeed(t *testing.T) *saleSeed {
	t.Helper()
	db := openTestDB(t)
	s := &saleSeed{db: db, repo: NewSaleRepository(db)}
	s.cashier = &model.User{Email: "ana@shop.test", Name: "Ana", PasswordHash: "x", Role: model.RoleCashier}
	require.NoError(t, db.Create(s.cashier).Error)
	s.product = &model.Product{Name: "Coffee", Price: decimal.RequireFromString("12.99"), Active: true}
	require.NoError(t, db.Create(s.product).Error)
	return s
}

func (s *saleSeed) sale(t *testing.T, invoice, total string, at time.Time) *model.Sale {
	t.Helper()
	amount := decimal.RequireFromString(total)
	sale := &model.Sale{
		InvoiceNumber: invoice,
		OrderNumber:   "ORD-" + invoice,
		CashierID:     s.cashier.ID,
		Items: []model.SaleItem{{
			ProductID: s.product.ID,
			Quantity:  1,
			UnitPrice: amount,
			LineTotal: amount,
		}},
		Subtotal:  amount,
		Tax:       decimal.Zero,
		Total:     amount,
		CreatedAt: at,
	}
	require.NoError(t, s.repo.Create(context.Background(), s.db, sale))
	return sale
}

func TestSaleRepository_CreateAndFind(t *testing.T) {
	s := newSaleSeed(t)
	created := s.sale(t, "INV-1", "12.99", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	require.NotZero(t, created.ID)
	require.NotZero(t, created.Items[0].ID)

	bare, err := s.repo.FindByID(context.Background(), created.ID, SaleRelations{})
	require.NoError(t, err)
	assert.Empty(t, bare.Items)
	assert.Nil(t, bare.Cashier)

	full, err := s.repo.FindByID(context.Background(), created.ID, SaleRelations{Items: true, Parties: true})
	require.NoError(t, err)
	require.Len(t, full.Items, 1)
	require.NotNil(t, full.Items[0].Product)
	assert.Equal(t, "Coffee", full.Items[0].Product.Name)
	assert.Equal(t, "12.99", full.Items[0].UnitPrice.StringFixed(2))
	require.NotNil(t, full.Cashier)
	assert.Equal(t, "Ana", full.Cashier.Name)
	assert.Nil(t, full.Customer)

	_, err = s.repo.FindByID(context.Background(), 999, SaleRelations{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSaleRepository_ListFilters(t *testing.T) {
	s := newSaleSeed(t)
	day := func(d, h int) time.Time { return time.Date(2026, 3, d, h, 0, 0, 0, time.UTC) }
	s.sale(t, "INV-1", "10.00", day(1, 10))
	s.sale(t, "INV-2", "20.00", day(3, 10))
	s.sale(t, "INV-3", "30.00", day(5, 10))

	invoices := func(list []model.Sale) []string {
		out := make([]string, len(list))
		for i, sale := range list {
			out[i] = sale.InvoiceNumber
		}
		return out
	}

	all, err := s.repo.List(context.Background(), SaleFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-3", "INV-2", "INV-1"}, invoices(all))

	from, to := day(2, 0), day(4, 0)
	between, err := s.repo.List(context.Background(), SaleFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-2"}, invoices(between))

	since, err := s.repo.List(context.Background(), SaleFilter{From: &from})
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-3", "INV-2"}, invoices(since))

	inclusive := day(5, 10)
	edge, err := s.repo.List(context.Background(), SaleFilter{From: &inclusive, To: &inclusive})
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-3"}, invoices(edge))
}

func TestSaleRepository_Totals(t *testing.T) {
	s := newSaleSeed(t)
	s.sale(t, "INV-1", "12.99", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	s.sale(t, "INV-2", "28.58", time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC))
	s.sale(t, "INV-3", "99.00", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1).Add(-time.Millisecond)
	totals, err := s.repo.Totals(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals.Count)
	assert.Equal(t, "41.57", totals.Total.StringFixed(2))

	empty, err := s.repo.Totals(context.Background(), from.AddDate(1, 0, 0), to.AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.Zero(t, empty.Count)
	assert.True(t, empty.Total.IsZero())
}
