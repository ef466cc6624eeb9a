package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SellFunc decides, from the locked gemstone row, what the row becomes and
// which sale to record. Returning an error aborts the transaction.
type SellFunc func(gem Gemstone) (Gemstone, Sale, error)

type LedgerDAO struct {
	db *gorm.DB
}

func NewLedgerDAO(db *gorm.DB) *LedgerDAO {
	return &LedgerDAO{
		db: db,
	}
}

// Sell locks the gemstone row (SELECT ... FOR UPDATE), hands it to fn, then
// writes the decremented stock and inserts the sale in the same transaction.
// Concurrent sells of one gemstone are serialised by the lock.
func (d *LedgerDAO) Sell(ctx context.Context, gemstoneID uint, fn SellFunc) (Gemstone, Sale, error) {
	var (
		updated Gemstone
		sale    Sale
	)

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var gem Gemstone

		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&gem, gemstoneID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrGemstoneNotFound
			}

			return result.Error
		}

		next, s, err := fn(gem)
		if err != nil {
			return err
		}

		result = tx.Model(&Gemstone{ID: gem.ID}).
			Select("quantity", "weight", "total_price").
			Updates(&next)
		if result.Error != nil {
			return result.Error
		}

		if err := tx.Create(&s).Error; err != nil {
			return err
		}

		updated, sale = next, s

		return nil
	})
	if err != nil {
		return Gemstone{}, Sale{}, err
	}

	return updated, sale, nil
}
