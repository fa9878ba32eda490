package service

import (
	"context"

	"retailpos/internal/dto"
	"retailpos/internal/metrics"
	"retailpos/internal/model"
	"retailpos/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	Create(ctx context.Context, cashierID uint, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	Get(ctx context.Context, id uint) (*dto.SaleResponse, error)
}

type saleService struct {
	repo      repository.SaleRepository
	products  repository.ProductRepository
	users     repository.UserRepository
	customers repository.CustomerRepository
	metrics   *metrics.Metrics
}

func NewSaleService(
	repo repository.SaleRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	customers repository.CustomerRepository,
	m *metrics.Metrics,
) SaleService {
	return &saleService{
		repo:      repo,
		products:  products,
		users:     users,
		customers: customers,
		metrics:   m,
	}
}

// ── Create ────────────────────────────────────────────────────────────────────
// One transaction:
//   1. Batch-resolve product ids; unknown ids are skipped and reported
//   2. Price each line from the catalog (unit price snapshot)
//   3. Resolve cashier and optional customer
//   4. Insert sale + items

func (s *saleService) Create(ctx context.Context, cashierID uint, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}
	if req.TaxRate.IsNegative() {
		return nil, invalidInput("tax_rate cannot be negative")
	}

	ids := make([]uint, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return nil, invalidInput("quantity must be positive")
		}
		ids = append(ids, it.ProductID)
	}

	var sale model.Sale
	var dropped []uint
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		products, err := s.products.FindByIDsTx(tx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uint]model.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		subtotal := decimal.Zero
		items := make([]model.SaleItem, 0, len(req.Items))
		for _, it := range req.Items {
			p, ok := byID[it.ProductID]
			if !ok {
				dropped = append(dropped, it.ProductID)
				log.Warn().
					Uint("product_id", it.ProductID).
					Uint("cashier_id", cashierID).
					Msg("sale item skipped: unknown product")
				continue
			}
			amount := lineTotal(p.Price, it.Quantity)
			subtotal = subtotal.Add(amount)
			items = append(items, model.SaleItem{
				ProductID: p.ID,
				Quantity:  it.Quantity,
				UnitPrice: p.Price,
				LineTotal: amount,
			})
		}
		if len(items) == 0 {
			return ErrNoValidItems
		}

		cashier, err := s.users.FindByIDTx(tx, cashierID)
		if err != nil {
			return notFound(err, ErrCashierNotFound)
		}
		var customer *model.Customer
		if req.CustomerID != nil {
			customer, err = s.customers.FindByIDTx(tx, *req.CustomerID)
			if err != nil {
				return notFound(err, ErrCustomerNotFound)
			}
		}

		tax := taxAmount(subtotal, req.TaxRate)
		sale = model.Sale{
			InvoiceNumber: req.InvoiceNumber,
			OrderNumber:   req.OrderNumber,
			CashierID:     cashier.ID,
			CustomerID:    req.CustomerID,
			Items:         items,
			Subtotal:      subtotal,
			Tax:           tax,
			Total:         subtotal.Add(tax),
		}
		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return err
		}

		// Attach the rows already read so the response carries them.
		sale.Cashier = cashier
		sale.Customer = customer
		for i := range sale.Items {
			p := byID[sale.Items[i].ProductID]
			sale.Items[i].Product = &p
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	total, _ := sale.Total.Float64()
	s.metrics.SaleCreated(total, len(dropped))
	log.Info().
		Uint("sale_id", sale.ID).
		Uint("cashier_id", sale.CashierID).
		Int("items", len(sale.Items)).
		Str("total", sale.Total.StringFixed(2)).
		Msg("sale created")

	resp := mapSale(&sale)
	resp.DroppedProductIDs = dropped
	return resp, nil
}

func (s *saleService) Get(ctx context.Context, id uint) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id, repository.SaleRelations{Items: true, Parties: true})
	if err != nil {
		return nil, notFound(err, ErrSaleNotFound)
	}
	return mapSale(sale), nil
}

// lineTotal is price × quantity rounded half-up to cents.
func lineTotal(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty))).Round(2)
}

// taxAmount is subtotal × rate rounded half-up to cents.
func taxAmount(subtotal, rate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(rate).Round(2)
}
