package service

import (
	"context"
	"fmt"

	"retailpos/internal/infra"
	"retailpos/internal/repository"

	"github.com/rs/zerolog/log"
)

// ReceiptMailer delivers a rendered receipt. Implemented by infra.Mailer.
type ReceiptMailer interface {
	SendReceipt(to, subject, body, filename string, pdf []byte) error
}

type ReceiptService interface {
	// PDF renders the receipt of a sale and returns the bytes and a file name.
	PDF(ctx context.Context, saleID uint) ([]byte, string, error)
	// Email sends the receipt to the customer recorded on the sale.
	Email(ctx context.Context, saleID uint) (string, error)
}

type receiptService struct {
	sales     repository.SaleRepository
	mailer    ReceiptMailer
	storeName string
}

// NewReceiptService accepts a nil mailer; Email then fails with ErrUnavailable.
func NewReceiptService(sales repository.SaleRepository, mailer ReceiptMailer, storeName string) ReceiptService {
	return &receiptService{sales: sales, mailer: mailer, storeName: storeName}
}

func (s *receiptService) PDF(ctx context.Context, saleID uint) ([]byte, string, error) {
	sale, err := s.sales.FindByID(ctx, saleID, repository.SaleRelations{Items: true, Parties: true})
	if err != nil {
		return nil, "", notFound(err, ErrSaleNotFound)
	}
	pdf, err := infra.RenderReceiptPDF(sale, s.storeName)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("receipt_%d.pdf", sale.ID), nil
}

func (s *receiptService) Email(ctx context.Context, saleID uint) (string, error) {
	if s.mailer == nil {
		return "", withKind(ErrUnavailable, "e-mail delivery is not configured")
	}
	sale, err := s.sales.FindByID(ctx, saleID, repository.SaleRelations{Items: true, Parties: true})
	if err != nil {
		return "", notFound(err, ErrSaleNotFound)
	}
	if sale.Customer == nil || sale.Customer.Email == nil || *sale.Customer.Email == "" {
		return "", invalidInput("sale has no customer e-mail")
	}

	pdf, err := infra.RenderReceiptPDF(sale, s.storeName)
	if err != nil {
		return "", err
	}
	to := *sale.Customer.Email
	subject := fmt.Sprintf("%s receipt %s", s.storeName, sale.InvoiceNumber)
	body := fmt.Sprintf("Hi %s,\n\nYour receipt for order %s is attached. Total: $%s.\n\nThank you!",
		sale.Customer.Name, sale.OrderNumber, sale.Total.StringFixed(2))
	if err := s.mailer.SendReceipt(to, subject, body, fmt.Sprintf("receipt_%d.pdf", sale.ID), pdf); err != nil {
		log.Error().Err(err).Uint("sale_id", sale.ID).Msg("receipt e-mail failed")
		return "", withKind(ErrUnavailable, "sending receipt")
	}
	return to, nil
}
