package repository

import (
	"context"
	"fmt"

	"github.com/sphenegem/gem-inventory-api/internal/domain"
	"github.com/sphenegem/gem-inventory-api/internal/repository/dao"
)

var ErrSaleNotFound = dao.ErrSaleNotFound

type SaleDAO interface {
	FindByID(ctx context.Context, id uint) (dao.Sale, error)
	List(ctx context.Context, query string, offset, limit int) ([]dao.Sale, int64, error)
	Delete(ctx context.Context, id uint) error
	SetInvoiceKey(ctx context.Context, id uint, key string) error
}

type LedgerDAO interface {
	Sell(ctx context.Context, gemstoneID uint, fn dao.SellFunc) (dao.Gemstone, dao.Sale, error)
}

type SaleRepository struct {
	dao    SaleDAO
	ledger LedgerDAO
}

func NewSaleRepository(dao SaleDAO, ledger LedgerDAO) *SaleRepository {
	return &SaleRepository{
		dao:    dao,
		ledger: ledger,
	}
}

// Sell runs decide against the locked gemstone and persists its outcome
// atomically. Errors returned by decide are passed through unchanged.
func (r *SaleRepository) Sell(
	ctx context.Context,
	gemstoneID uint,
	decide func(domain.Gemstone) (domain.Gemstone, domain.Sale, error),
) (domain.Gemstone, domain.Sale, error) {
	updated, sale, err := r.ledger.Sell(ctx, gemstoneID, func(locked dao.Gemstone) (dao.Gemstone, dao.Sale, error) {
		next, s, err := decide(gemstoneDaoToDomain(locked))
		if err != nil {
			return dao.Gemstone{}, dao.Sale{}, err
		}

		return gemstoneDomainToDao(next), saleDomainToDao(s), nil
	})
	if err != nil {
		return domain.Gemstone{}, domain.Sale{}, fmt.Errorf("r.ledger.Sell -> %w", err)
	}

	return gemstoneDaoToDomain(updated), saleDaoToDomain(sale), nil
}

func (r *SaleRepository) FindByID(ctx context.Context, id uint) (domain.Sale, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return saleDaoToDomain(found), nil
}

func (r *SaleRepository) List(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Sale], error) {
	q = q.Normalize()

	found, total, err := r.dao.List(ctx, q.Query, q.Offset(), q.PageSize)
	if err != nil {
		return domain.Page[domain.Sale]{}, fmt.Errorf("r.dao.List -> %w", err)
	}

	items := make([]domain.Sale, 0, len(found))
	for _, s := range found {
		items = append(items, saleDaoToDomain(s))
	}

	return domain.Page[domain.Sale]{
		Items:    items,
		Page:     q.Page,
		PageSize: q.PageSize,
		Total:    total,
	}, nil
}

func (r *SaleRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *SaleRepository) SetInvoiceKey(ctx context.Context, id uint, key string) error {
	if err := r.dao.SetInvoiceKey(ctx, id, key); err != nil {
		return fmt.Errorf("r.dao.SetInvoiceKey -> %w", err)
	}

	return nil
}

func saleDaoToDomain(s dao.Sale) domain.Sale {
	return domain.Sale{
		ID:            s.ID,
		GemstoneID:    s.GemstoneID,
		Code:          s.Code,
		Name:          s.Name,
		Quantity:      s.Quantity,
		CaratSold:     s.CaratSold,
		PricePerCarat: s.PricePerCarat,
		MarkingPrice:  s.MarkingPrice,
		SellingPrice:  s.SellingPrice,
		TotalAmount:   s.TotalAmount,
		Remark:        s.Remark,
		InvoiceKey:    s.InvoiceKey,
		SoldAt:        s.SoldAt,
	}
}

func saleDomainToDao(s domain.Sale) dao.Sale {
	return dao.Sale{
		ID:            s.ID,
		GemstoneID:    s.GemstoneID,
		Code:          s.Code,
		Name:          s.Name,
		Quantity:      s.Quantity,
		CaratSold:     s.CaratSold,
		PricePerCarat: s.PricePerCarat,
		MarkingPrice:  s.MarkingPrice,
		SellingPrice:  s.SellingPrice,
		TotalAmount:   s.TotalAmount,
		Remark:        s.Remark,
		InvoiceKey:    s.InvoiceKey,
		SoldAt:        s.SoldAt,
	}
}
