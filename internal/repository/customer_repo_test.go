package repository

import (
	"context"
	"testing"
	"time"

	"retailpos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_Search(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(openTestDB(t))

	email := "Marta.Diaz@Example.com"
	addr := "12 Harbour Road"
	require.NoError(t, repo.Create(ctx, &model.Customer{Name: "Marta Diaz", Phone: "555-0101", Email: &email}))
	require.NoError(t, repo.Create(ctx, &model.Customer{Name: "Tom Lee", Phone: "555-0202", Address: &addr}))
	require.NoError(t, repo.Create(ctx, &model.Customer{Name: "Zoe", Phone: "777-0303"}))

	cases := map[string]int{
		"marta":   1, // name, case-insensitive
		"example": 1, // email
		"harbour": 1, // address
		"555":     2, // phone
		"nobody":  0,
	}
	for term, want := range cases {
		got, err := repo.Search(ctx, term)
		require.NoError(t, err)
		assert.Len(t, got, want, term)
	}
}

func TestCustomerRepository_SearchMatchesAnyField(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(openTestDB(t))

	byName := &model.Customer{Name: "Ana Gomez", Phone: "555-0001"}
	byPhone := &model.Customer{Name: "Bruno Silva", Phone: "5551234ana0"}
	neither := &model.Customer{Name: "Carl Olsen", Phone: "555-0003"}
	for _, c := range []*model.Customer{byName, byPhone, neither} {
		require.NoError(t, repo.Create(ctx, c))
	}

	got, err := repo.Search(ctx, "ana")
	require.NoError(t, err)
	ids := make([]uint, 0, len(got))
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []uint{byName.ID, byPhone.ID}, ids)
	assert.NotContains(t, ids, neither.ID)
}

func TestCustomerRepository_SalesCount(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewCustomerRepository(db)

	cashier := &model.User{Email: "c@shop.test", Name: "C", PasswordHash: "x", Role: model.RoleCashier}
	require.NoError(t, db.Create(cashier).Error)

	first := &model.Customer{Name: "First", Phone: "1", CreatedAt: time.Now().Add(-time.Hour)}
	second := &model.Customer{Name: "Second", Phone: "2"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	for i := 0; i < 2; i++ {
		require.NoError(t, db.Omit("Cashier", "Customer").Create(&model.Sale{
			InvoiceNumber: "INV", OrderNumber: "ORD",
			CashierID: cashier.ID, CustomerID: &first.ID,
			Subtotal: decimal.Zero, Tax: decimal.Zero, Total: decimal.Zero,
		}).Error)
	}

	rows, err := repo.ListWithSalesCount(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Second", rows[0].Name)
	assert.Equal(t, int64(0), rows[0].SalesCount)
	assert.Equal(t, "First", rows[1].Name)
	assert.Equal(t, int64(2), rows[1].SalesCount)

	n, err := repo.CountSales(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, repo.Delete(ctx, second.ID))
	_, err = repo.FindByID(ctx, second.ID)
	assert.Error(t, err)
}
