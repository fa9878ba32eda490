package service

import (
	"context"
	"strings"
	"time"

	"retailpos/internal/dto"
	"retailpos/internal/repository"

	"github.com/araddon/dateparse"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

type ReportService interface {
	TodaySummary(ctx context.Context) (*dto.TodaySummaryResponse, error)
	History(ctx context.Context, filter dto.HistoryFilter) ([]dto.SaleResponse, error)
	ExportHistoryCSV(ctx context.Context, filter dto.HistoryFilter) ([]byte, error)
}

type reportService struct {
	sales repository.SaleRepository
	now   func() time.Time
	loc   *time.Location
}

func NewReportService(sales repository.SaleRepository) ReportService {
	return &reportService{sales: sales, now: time.Now, loc: time.Local}
}

// TodaySummary aggregates the sales of the server's local calendar day.
func (s *reportService) TodaySummary(ctx context.Context) (*dto.TodaySummaryResponse, error) {
	start, end := dayBounds(s.now().In(s.loc))
	totals, err := s.sales.Totals(ctx, start, end)
	if err != nil {
		return nil, err
	}

	resp := &dto.TodaySummaryResponse{
		TotalSales: totals.Total.Round(2),
		OrderCount: totals.Count,
		AvgTicket:  decimal.Zero,
	}
	if totals.Count > 0 {
		resp.AvgTicket = totals.Total.Div(decimal.NewFromInt(totals.Count)).Round(2)
	}
	return resp, nil
}

func (s *reportService) History(ctx context.Context, filter dto.HistoryFilter) ([]dto.SaleResponse, error) {
	sf, empty, err := s.saleFilter(filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SaleResponse, 0)
	if empty {
		return resp, nil
	}

	sales, err := s.sales.List(ctx, sf)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		resp = append(resp, *mapSale(&sales[i]))
	}
	return resp, nil
}

func (s *reportService) ExportHistoryCSV(ctx context.Context, filter dto.HistoryFilter) ([]byte, error) {
	history, err := s.History(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.SaleCSVRow, len(history))
	for i, h := range history {
		row := dto.SaleCSVRow{
			ID:            h.ID,
			CreatedAt:     h.CreatedAt.In(s.loc).Format(time.RFC3339),
			InvoiceNumber: h.InvoiceNumber,
			OrderNumber:   h.OrderNumber,
			ItemCount:     len(h.Items),
			Subtotal:      h.Subtotal.StringFixed(2),
			Tax:           h.Tax.StringFixed(2),
			Total:         h.Total.StringFixed(2),
		}
		if h.Cashier != nil {
			row.Cashier = h.Cashier.Name
		}
		if h.Customer != nil {
			row.Customer = h.Customer.Name
		}
		rows[i] = row
	}
	return gocsv.MarshalBytes(&rows)
}

// saleFilter turns query strings into a store filter. Both bounds give an
// inclusive range; only "from" gives an open-ended range; "to" alone is
// ignored. empty reports a range that cannot match (from after to).
func (s *reportService) saleFilter(filter dto.HistoryFilter) (repository.SaleFilter, bool, error) {
	sf := repository.SaleFilter{Load: repository.SaleRelations{Items: true, Parties: true}}

	from, err := s.parseBound(filter.From, false)
	if err != nil {
		return sf, false, err
	}
	if from == nil {
		return sf, false, nil
	}
	sf.From = from

	to, err := s.parseBound(filter.To, true)
	if err != nil {
		return sf, false, err
	}
	if to != nil && from.After(*to) {
		return sf, true, nil
	}
	sf.To = to
	return sf, false, nil
}

// parseBound accepts any layout dateparse understands. A date without a
// clock time used as an upper bound covers the whole day.
func (s *reportService) parseBound(raw string, upper bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := dateparse.ParseIn(raw, s.loc)
	if err != nil {
		return nil, invalidInput("invalid date %q", raw)
	}
	if upper && !strings.Contains(raw, ":") {
		_, t = dayBounds(t)
	}
	return &t, nil
}

// dayBounds returns 00:00:00.000 and 23:59:59.999 of t's calendar day.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}
