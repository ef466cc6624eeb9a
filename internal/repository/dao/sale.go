package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrSaleNotFound = errors.New("sale not found")

// Sale is an immutable snapshot of a gemstone at the moment it was sold.
// gemstone_id carries no foreign key so sales outlive their gemstone.
type Sale struct {
	ID uint `gorm:"primaryKey"`

	GemstoneID    uint            `gorm:"not null;index"`
	Code          string          `gorm:"size:64;not null;index"`
	Name          string          `gorm:"size:128"`
	Quantity      int             `gorm:"not null"`
	CaratSold     decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	PricePerCarat decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	MarkingPrice  decimal.Decimal `gorm:"type:numeric(16,2);not null"`
	SellingPrice  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(16,2);not null"`
	Remark        string          `gorm:"type:text"`
	InvoiceKey    string          `gorm:"size:255"`

	SoldAt    time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

type SaleDAO struct {
	db *gorm.DB
}

func NewSaleDAO(db *gorm.DB) *SaleDAO {
	return &SaleDAO{
		db: db,
	}
}

func (d *SaleDAO) FindByID(ctx context.Context, id uint) (Sale, error) {
	var sale Sale

	result := d.db.WithContext(ctx).First(&sale, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Sale{}, ErrSaleNotFound
		}

		return Sale{}, result.Error
	}

	return sale, nil
}

// List returns one page of sales, most recent first.
func (d *SaleDAO) List(ctx context.Context, query string, offset, limit int) ([]Sale, int64, error) {
	var (
		sales []Sale
		total int64
	)

	filter := matchCodeOrName(query)

	if err := d.db.WithContext(ctx).Model(&Sale{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := d.db.WithContext(ctx).
		Scopes(filter).
		Order("sold_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&sales)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return sales, total, nil
}

// Delete removes the sale row only. Stock is never given back.
func (d *SaleDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Sale{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSaleNotFound
	}

	return nil
}

func (d *SaleDAO) SetInvoiceKey(ctx context.Context, id uint, key string) error {
	result := d.db.WithContext(ctx).Model(&Sale{}).Where("id = ?", id).Update("invoice_key", key)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSaleNotFound
	}

	return nil
}
