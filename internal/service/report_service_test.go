package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"retailpos/internal/dto"
	"retailpos/internal/model"
	"retailpos/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReportService(repo *stubSaleRepo, now time.Time) *reportService {
	return &reportService{
		sales: repo,
		now:   func() time.Time { return now },
		loc:   time.UTC,
	}
}

func TestTodaySummary_UsesLocalDayBounds(t *testing.T) {
	repo := &stubSaleRepo{totals: repository.SaleTotals{Total: decimal.RequireFromString("50.00"), Count: 3}}
	svc := newTestReportService(repo, time.Date(2026, 3, 10, 15, 4, 5, 0, time.UTC))

	resp, err := svc.TodaySummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "50.00", resp.TotalSales.StringFixed(2))
	assert.Equal(t, int64(3), resp.OrderCount)
	assert.Equal(t, "16.67", resp.AvgTicket.StringFixed(2))

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), repo.totalsFrom)
	assert.Equal(t, time.Date(2026, 3, 10, 23, 59, 59, int(999*time.Millisecond), time.UTC), repo.totalsTo)
}

func TestTodaySummary_NoSales(t *testing.T) {
	repo := &stubSaleRepo{totals: repository.SaleTotals{Total: decimal.Zero}}
	svc := newTestReportService(repo, time.Now())

	resp, err := svc.TodaySummary(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.TotalSales.IsZero())
	assert.True(t, resp.AvgTicket.IsZero())
	assert.Zero(t, resp.OrderCount)
}

func TestHistory_Filters(t *testing.T) {
	march1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	endOfMarch5 := time.Date(2026, 3, 5, 23, 59, 59, int(999*time.Millisecond), time.UTC)

	cases := []struct {
		name     string
		filter   dto.HistoryFilter
		wantFrom *time.Time
		wantTo   *time.Time
	}{
		{name: "no bounds", filter: dto.HistoryFilter{}},
		{name: "only to is ignored", filter: dto.HistoryFilter{To: "2026-03-05"}},
		{name: "only from", filter: dto.HistoryFilter{From: "2026-03-01"}, wantFrom: &march1},
		{
			name:     "date-only to covers the whole day",
			filter:   dto.HistoryFilter{From: "2026-03-01", To: "2026-03-05"},
			wantFrom: &march1,
			wantTo:   &endOfMarch5,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubSaleRepo{}
			svc := newTestReportService(repo, time.Now())

			resp, err := svc.History(context.Background(), tc.filter)
			require.NoError(t, err)
			assert.NotNil(t, resp)
			require.Equal(t, 1, repo.listCalls)

			assert.Equal(t, tc.wantFrom, repo.lastFilter.From)
			assert.Equal(t, tc.wantTo, repo.lastFilter.To)
			assert.True(t, repo.lastFilter.Load.Items)
			assert.True(t, repo.lastFilter.Load.Parties)
		})
	}
}

func TestHistory_TimestampUpperBoundIsExact(t *testing.T) {
	repo := &stubSaleRepo{}
	svc := newTestReportService(repo, time.Now())

	_, err := svc.History(context.Background(), dto.HistoryFilter{From: "2026-03-01", To: "2026-03-01 12:30:00"})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.To)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC), *repo.lastFilter.To)
}

func TestHistory_FromAfterToIsEmpty(t *testing.T) {
	repo := &stubSaleRepo{listResult: []model.Sale{{ID: 1}}}
	svc := newTestReportService(repo, time.Now())

	resp, err := svc.History(context.Background(), dto.HistoryFilter{From: "2026-03-05", To: "2026-03-01"})
	require.NoError(t, err)
	assert.Empty(t, resp)
	assert.Zero(t, repo.listCalls)
}

func TestHistory_InvalidDate(t *testing.T) {
	svc := newTestReportService(&stubSaleRepo{}, time.Now())

	_, err := svc.History(context.Background(), dto.HistoryFilter{From: "yesterday-ish"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExportHistoryCSV(t *testing.T) {
	email := "luis@example.com"
	repo := &stubSaleRepo{listResult: []model.Sale{{
		ID:            7,
		InvoiceNumber: "INV-7",
		OrderNumber:   "ORD-7",
		Cashier:       &model.User{Name: "Ana"},
		Customer:      &model.Customer{Name: "Luis", Email: &email},
		Items:         []model.SaleItem{{Quantity: 1}, {Quantity: 2}},
		Subtotal:      decimal.RequireFromString("25.98"),
		Tax:           decimal.RequireFromString("2.6"),
		Total:         decimal.RequireFromString("28.58"),
		CreatedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}}}
	svc := newTestReportService(repo, time.Now())

	out, err := svc.ExportHistoryCSV(context.Background(), dto.HistoryFilter{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,created_at,invoice_number,order_number,cashier,customer,items,subtotal,tax,total", lines[0])
	assert.Equal(t, "7,2026-03-01T10:00:00Z,INV-7,ORD-7,Ana,Luis,2,25.98,2.60,28.58", lines[1])
}
