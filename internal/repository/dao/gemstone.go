package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrGemstoneNotFound   = errors.New("gemstone not found")
	ErrGemstoneCodeExists = errors.New("gemstone code already exists")
)

// Gemstone rows are soft deleted. The code is only unique among live rows so
// a deleted code can be reused.
type Gemstone struct {
	ID uint `gorm:"primaryKey"`

	Code          string          `gorm:"size:64;not null;uniqueIndex:idx_gemstones_code,where:deleted_at IS NULL"`
	Name          string          `gorm:"size:128"`
	Quantity      int             `gorm:"not null"`
	Weight        decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	PricePerCarat decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(16,2);not null"`
	Shape         string          `gorm:"size:64;not null"`
	Remark        string          `gorm:"type:text"`
	ImageKey      string          `gorm:"size:255"`

	CreatedAt time.Time      `gorm:"not null;index"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

var gemstoneEditableColumns = []string{
	"code", "name", "quantity", "weight", "price_per_carat", "total_price", "shape", "remark", "image_key",
}

type GemstoneDAO struct {
	db *gorm.DB
}

func NewGemstoneDAO(db *gorm.DB) *GemstoneDAO {
	return &GemstoneDAO{
		db: db,
	}
}

func (d *GemstoneDAO) Insert(ctx context.Context, gem Gemstone) (Gemstone, error) {
	result := d.db.WithContext(ctx).Create(&gem)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Gemstone{}, ErrGemstoneCodeExists
		}

		return Gemstone{}, result.Error
	}

	return gem, nil
}

func (d *GemstoneDAO) FindByID(ctx context.Context, id uint) (Gemstone, error) {
	var gem Gemstone

	result := d.db.WithContext(ctx).First(&gem, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Gemstone{}, ErrGemstoneNotFound
		}

		return Gemstone{}, result.Error
	}

	return gem, nil
}

// Update overwrites every editable column, zero values included.
func (d *GemstoneDAO) Update(ctx context.Context, gem Gemstone) (Gemstone, error) {
	result := d.db.WithContext(ctx).
		Model(&Gemstone{ID: gem.ID}).
		Select(gemstoneEditableColumns).
		Updates(&gem)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Gemstone{}, ErrGemstoneCodeExists
		}

		return Gemstone{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Gemstone{}, ErrGemstoneNotFound
	}

	return d.FindByID(ctx, gem.ID)
}

func (d *GemstoneDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Gemstone{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGemstoneNotFound
	}

	return nil
}

// List returns one page of live gemstones, newest first, and the total number
// of rows matching query.
func (d *GemstoneDAO) List(ctx context.Context, query string, offset, limit int) ([]Gemstone, int64, error) {
	var (
		gems  []Gemstone
		total int64
	)

	filter := matchCodeOrName(query)

	if err := d.db.WithContext(ctx).Model(&Gemstone{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := d.db.WithContext(ctx).
		Scopes(filter).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&gems)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return gems, total, nil
}

func (d *GemstoneDAO) Search(ctx context.Context, query string) ([]Gemstone, error) {
	var gems []Gemstone

	result := d.db.WithContext(ctx).
		Scopes(matchCodeOrName(query)).
		Order("code ASC").
		Find(&gems)
	if result.Error != nil {
		return nil, result.Error
	}

	return gems, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// matchCodeOrName filters on a case-insensitive substring of code or name.
// An empty query matches everything.
func matchCodeOrName(query string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if query == "" {
			return tx
		}

		pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"

		return tx.Where(`(LOWER(code) LIKE ? ESCAPE '\' OR LOWER(name) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
}
