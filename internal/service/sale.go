package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sphenegem/gem-inventory-api/internal/domain"
	"github.com/sphenegem/gem-inventory-api/internal/repository"
)

var (
	ErrSaleNotFound = repository.ErrSaleNotFound
	ErrOverSell     = domain.ErrOverSell
)

const defaultInvoiceTimeout = 10 * time.Second

type SaleRepository interface {
	Sell(ctx context.Context, gemstoneID uint, decide func(domain.Gemstone) (domain.Gemstone, domain.Sale, error)) (domain.Gemstone, domain.Sale, error)
	FindByID(ctx context.Context, id uint) (domain.Sale, error)
	List(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Sale], error)
	Delete(ctx context.Context, id uint) error
	SetInvoiceKey(ctx context.Context, id uint, key string) error
}

type InvoiceEmitter interface {
	Emit(ctx context.Context, sale domain.Sale) (string, error)
	Render(sale domain.Sale) ([]byte, error)
}

type SaleService struct {
	repo           SaleRepository
	invoices       InvoiceEmitter
	stats          StatsInvalidator
	invoiceTimeout time.Duration
	now            func() time.Time
}

func NewSaleService(repo SaleRepository, invoices InvoiceEmitter, stats StatsInvalidator, invoiceTimeout time.Duration) *SaleService {
	if stats == nil {
		stats = nopInvalidator{}
	}
	if invoiceTimeout <= 0 {
		invoiceTimeout = defaultInvoiceTimeout
	}

	return &SaleService{
		repo:           repo,
		invoices:       invoices,
		stats:          stats,
		invoiceTimeout: invoiceTimeout,
		now:            time.Now,
	}
}

// Sell moves stock into a new sale atomically, then emits the invoice. An
// invoice failure never undoes the sale; it comes back as a warning on the
// receipt. Sell is not retried.
func (s *SaleService) Sell(ctx context.Context, order domain.SellOrder) (domain.SaleReceipt, error) {
	if err := order.Validate(); err != nil {
		return domain.SaleReceipt{}, err
	}

	_, sale, err := s.repo.Sell(ctx, order.GemstoneID, func(locked domain.Gemstone) (domain.Gemstone, domain.Sale, error) {
		return locked.Sell(order, s.now())
	})
	if err != nil {
		return domain.SaleReceipt{}, fmt.Errorf("s.repo.Sell -> %w", err)
	}

	s.stats.Invalidate(ctx)

	receipt := domain.SaleReceipt{Sale: sale}

	handle, err := s.emitInvoice(ctx, sale)
	if err != nil {
		zap.L().Warn("sale committed without invoice",
			zap.Uint("sale_id", sale.ID),
			zap.Uint("gemstone_id", sale.GemstoneID),
			zap.Error(err),
		)
		receipt.InvoiceWarning = "invoice could not be generated; it can be downloaded later"

		return receipt, nil
	}

	receipt.InvoiceHandle = handle
	receipt.Sale.InvoiceKey = handle

	return receipt, nil
}

func (s *SaleService) emitInvoice(ctx context.Context, sale domain.Sale) (string, error) {
	if s.invoices == nil {
		return "", errors.New("no invoice emitter configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.invoiceTimeout)
	defer cancel()

	handle, err := s.invoices.Emit(ctx, sale)
	if err != nil {
		return "", fmt.Errorf("s.invoices.Emit -> %w", err)
	}

	if err := s.repo.SetInvoiceKey(ctx, sale.ID, handle); err != nil {
		return "", fmt.Errorf("s.repo.SetInvoiceKey -> %w", err)
	}

	return handle, nil
}

func (s *SaleService) GetSale(ctx context.Context, id uint) (domain.Sale, error) {
	sale, err := withReadRetry(ctx, func(ctx context.Context) (domain.Sale, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return domain.Sale{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return sale, nil
}

func (s *SaleService) ListSales(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Sale], error) {
	page, err := withReadRetry(ctx, func(ctx context.Context) (domain.Page[domain.Sale], error) {
		return s.repo.List(ctx, q)
	})
	if err != nil {
		return domain.Page[domain.Sale]{}, fmt.Errorf("s.repo.List -> %w", err)
	}

	return page, nil
}

// DeleteSale removes the record only; the sold stock is not given back.
func (s *SaleService) DeleteSale(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.stats.Invalidate(ctx)

	return nil
}

// Invoice renders the invoice document for a sale. When the sale has no
// stored invoice yet the document is filed as well, best-effort.
func (s *SaleService) Invoice(ctx context.Context, id uint) (domain.Sale, []byte, error) {
	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return domain.Sale{}, nil, err
	}

	if s.invoices == nil {
		return domain.Sale{}, nil, errors.New("no invoice emitter configured")
	}

	doc, err := s.invoices.Render(sale)
	if err != nil {
		return domain.Sale{}, nil, fmt.Errorf("s.invoices.Render -> %w", err)
	}

	if sale.InvoiceKey == "" {
		if handle, err := s.emitInvoice(ctx, sale); err != nil {
			zap.L().Warn("failed to store invoice", zap.Uint("sale_id", sale.ID), zap.Error(err))
		} else {
			sale.InvoiceKey = handle
		}
	}

	return sale, doc, nil
}
