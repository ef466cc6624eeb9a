package repository

import (
	"context"
	"fmt"

	"github.com/sphenegem/gem-inventory-api/internal/domain"
	"github.com/sphenegem/gem-inventory-api/internal/repository/dao"
)

var (
	ErrGemstoneNotFound   = dao.ErrGemstoneNotFound
	ErrGemstoneCodeExists = dao.ErrGemstoneCodeExists
)

type GemstoneDAO interface {
	Insert(ctx context.Context, gem dao.Gemstone) (dao.Gemstone, error)
	FindByID(ctx context.Context, id uint) (dao.Gemstone, error)
	Update(ctx context.Context, gem dao.Gemstone) (dao.Gemstone, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query string, offset, limit int) ([]dao.Gemstone, int64, error)
	Search(ctx context.Context, query string) ([]dao.Gemstone, error)
}

type GemstoneRepository struct {
	dao GemstoneDAO
}

func NewGemstoneRepository(dao GemstoneDAO) *GemstoneRepository {
	return &GemstoneRepository{
		dao: dao,
	}
}

func (r *GemstoneRepository) Create(ctx context.Context, gem domain.Gemstone) (domain.Gemstone, error) {
	created, err := r.dao.Insert(ctx, gemstoneDomainToDao(gem))
	if err != nil {
		return domain.Gemstone{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return gemstoneDaoToDomain(created), nil
}

func (r *GemstoneRepository) FindByID(ctx context.Context, id uint) (domain.Gemstone, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Gemstone{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return gemstoneDaoToDomain(found), nil
}

func (r *GemstoneRepository) Update(ctx context.Context, gem domain.Gemstone) (domain.Gemstone, error) {
	updated, err := r.dao.Update(ctx, gemstoneDomainToDao(gem))
	if err != nil {
		return domain.Gemstone{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return gemstoneDaoToDomain(updated), nil
}

func (r *GemstoneRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *GemstoneRepository) List(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Gemstone], error) {
	q = q.Normalize()

	found, total, err := r.dao.List(ctx, q.Query, q.Offset(), q.PageSize)
	if err != nil {
		return domain.Page[domain.Gemstone]{}, fmt.Errorf("r.dao.List -> %w", err)
	}

	items := make([]domain.Gemstone, 0, len(found))
	for _, g := range found {
		items = append(items, gemstoneDaoToDomain(g))
	}

	return domain.Page[domain.Gemstone]{
		Items:    items,
		Page:     q.Page,
		PageSize: q.PageSize,
		Total:    total,
	}, nil
}

func (r *GemstoneRepository) Search(ctx context.Context, query string) ([]domain.Gemstone, error) {
	found, err := r.dao.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Search -> %w", err)
	}

	items := make([]domain.Gemstone, 0, len(found))
	for _, g := range found {
		items = append(items, gemstoneDaoToDomain(g))
	}

	return items, nil
}

func gemstoneDaoToDomain(g dao.Gemstone) domain.Gemstone {
	return domain.Gemstone{
		ID:            g.ID,
		Code:          g.Code,
		Name:          g.Name,
		Quantity:      g.Quantity,
		Weight:        g.Weight,
		PricePerCarat: g.PricePerCarat,
		TotalPrice:    g.TotalPrice,
		Shape:         g.Shape,
		Remark:        g.Remark,
		ImageKey:      g.ImageKey,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

func gemstoneDomainToDao(g domain.Gemstone) dao.Gemstone {
	return dao.Gemstone{
		ID:            g.ID,
		Code:          g.Code,
		Name:          g.Name,
		Quantity:      g.Quantity,
		Weight:        g.Weight,
		PricePerCarat: g.PricePerCarat,
		TotalPrice:    g.TotalPrice,
		Shape:         g.Shape,
		Remark:        g.Remark,
		ImageKey:      g.ImageKey,
	}
}
