package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/sphenegem/gem-inventory-api/internal/domain"
	"github.com/sphenegem/gem-inventory-api/internal/repository"
	"github.com/sphenegem/gem-inventory-api/internal/storage"
)

var (
	ErrGemstoneNotFound   = repository.ErrGemstoneNotFound
	ErrGemstoneCodeExists = repository.ErrGemstoneCodeExists
)

type GemstoneRepository interface {
	Create(ctx context.Context, gem domain.Gemstone) (domain.Gemstone, error)
	FindByID(ctx context.Context, id uint) (domain.Gemstone, error)
	Update(ctx context.Context, gem domain.Gemstone) (domain.Gemstone, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Gemstone], error)
	Search(ctx context.Context, query string) ([]domain.Gemstone, error)
}

// StatsInvalidator is told about every write that changes dashboard numbers.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

type nopInvalidator struct{}

func (nopInvalidator) Invalidate(context.Context) {}

// ImageUpload is an image attached to a gemstone create or edit.
type ImageUpload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

type GemstoneService struct {
	repo   GemstoneRepository
	images storage.ObjectStore
	stats  StatsInvalidator
}

func NewGemstoneService(repo GemstoneRepository, images storage.ObjectStore, stats StatsInvalidator) *GemstoneService {
	if stats == nil {
		stats = nopInvalidator{}
	}

	return &GemstoneService{
		repo:   repo,
		images: images,
		stats:  stats,
	}
}

func (s *GemstoneService) CreateGemstone(ctx context.Context, gem domain.Gemstone, img *ImageUpload) (domain.Gemstone, error) {
	if err := gem.Prepare(); err != nil {
		return domain.Gemstone{}, err
	}

	key, err := s.storeImage(ctx, img)
	if err != nil {
		return domain.Gemstone{}, err
	}
	gem.ImageKey = key

	created, err := s.repo.Create(ctx, gem)
	if err != nil {
		s.discardImage(ctx, key)
		return domain.Gemstone{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.stats.Invalidate(ctx)

	return s.withImageURL(ctx, created), nil
}

// UpdateGemstone replaces every editable field of gemstone id. The image is
// kept unless a new one is uploaded, in which case the old object is removed.
func (s *GemstoneService) UpdateGemstone(ctx context.Context, id uint, gem domain.Gemstone, img *ImageUpload) (domain.Gemstone, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Gemstone{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	gem.ID = id
	gem.ImageKey = existing.ImageKey
	if err := gem.Prepare(); err != nil {
		return domain.Gemstone{}, err
	}

	key, err := s.storeImage(ctx, img)
	if err != nil {
		return domain.Gemstone{}, err
	}
	if key != "" {
		gem.ImageKey = key
	}

	updated, err := s.repo.Update(ctx, gem)
	if err != nil {
		s.discardImage(ctx, key)
		return domain.Gemstone{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	if key != "" {
		s.discardImage(ctx, existing.ImageKey)
	}

	s.stats.Invalidate(ctx)

	return s.withImageURL(ctx, updated), nil
}

// DeleteGemstone soft deletes the row. Its image stays because sales may
// still point at the gemstone.
func (s *GemstoneService) DeleteGemstone(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.stats.Invalidate(ctx)

	return nil
}

func (s *GemstoneService) GetGemstone(ctx context.Context, id uint) (domain.Gemstone, error) {
	gem, err := withReadRetry(ctx, func(ctx context.Context) (domain.Gemstone, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return domain.Gemstone{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return s.withImageURL(ctx, gem), nil
}

func (s *GemstoneService) ListGemstones(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Gemstone], error) {
	page, err := withReadRetry(ctx, func(ctx context.Context) (domain.Page[domain.Gemstone], error) {
		return s.repo.List(ctx, q)
	})
	if err != nil {
		return domain.Page[domain.Gemstone]{}, fmt.Errorf("s.repo.List -> %w", err)
	}

	for i := range page.Items {
		page.Items[i] = s.withImageURL(ctx, page.Items[i])
	}

	return page, nil
}

func (s *GemstoneService) SearchGemstones(ctx context.Context, query string) ([]domain.Gemstone, error) {
	gems, err := withReadRetry(ctx, func(ctx context.Context) ([]domain.Gemstone, error) {
		return s.repo.Search(ctx, query)
	})
	if err != nil {
		return nil, fmt.Errorf("s.repo.Search -> %w", err)
	}

	for i := range gems {
		gems[i] = s.withImageURL(ctx, gems[i])
	}

	return gems, nil
}

func (s *GemstoneService) storeImage(ctx context.Context, img *ImageUpload) (string, error) {
	if img == nil {
		return "", nil
	}

	key, contentType, err := storage.NewImageKey(img.Filename, img.Size)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}

	if err := s.images.Put(ctx, key, img.Body, img.Size, contentType); err != nil {
		return "", fmt.Errorf("s.images.Put -> %w", err)
	}

	return key, nil
}

func (s *GemstoneService) discardImage(ctx context.Context, key string) {
	if key == "" {
		return
	}

	if err := s.images.Delete(ctx, key); err != nil {
		zap.L().Warn("failed to delete image", zap.String("key", key), zap.Error(err))
	}
}

func (s *GemstoneService) withImageURL(ctx context.Context, gem domain.Gemstone) domain.Gemstone {
	if gem.ImageKey == "" {
		return gem
	}

	url, err := s.images.URL(ctx, gem.ImageKey)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			zap.L().Warn("failed to resolve image url", zap.String("key", gem.ImageKey), zap.Error(err))
		}

		return gem
	}
	gem.ImageURL = url

	return gem
}
