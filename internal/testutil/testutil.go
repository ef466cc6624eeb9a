// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sphenegem/gem-inventory-api/internal/repository/dao"
)

// NewSQLiteDB opens a migrated in-memory database. The pool is pinned to one
// connection because every connection to :memory: is a separate database;
// this also serialises transactions the way a row lock would.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dao.InitTables(db), "failed to migrate test database")

	return db
}

// SeedGemstone inserts a live gemstone whose total price is already derived.
func SeedGemstone(t *testing.T, db *gorm.DB, code, name string, quantity int, weight, pricePerCarat string) dao.Gemstone {
	t.Helper()

	w := decimal.RequireFromString(weight)
	ppc := decimal.RequireFromString(pricePerCarat)

	gem, err := dao.NewGemstoneDAO(db).Insert(context.Background(), dao.Gemstone{
		Code:          code,
		Name:          name,
		Quantity:      quantity,
		Weight:        w,
		PricePerCarat: ppc,
		TotalPrice:    w.Mul(ppc).Round(2),
		Shape:         "oval",
	})
	require.NoError(t, err)

	return gem
}

// SeedSale inserts a sale row directly, bypassing the ledger.
func SeedSale(t *testing.T, db *gorm.DB, gem dao.Gemstone, quantity int, carat, amount string, soldAt time.Time) dao.Sale {
	t.Helper()

	sale := dao.Sale{
		GemstoneID:    gem.ID,
		Code:          gem.Code,
		Name:          gem.Name,
		Quantity:      quantity,
		CaratSold:     decimal.RequireFromString(carat),
		PricePerCarat: gem.PricePerCarat,
		MarkingPrice:  gem.TotalPrice,
		SellingPrice:  gem.PricePerCarat,
		TotalAmount:   decimal.RequireFromString(amount),
		SoldAt:        soldAt,
	}
	require.NoError(t, db.Create(&sale).Error)

	return sale
}

func SeedAdmin(t *testing.T, db *gorm.DB, username, password string) dao.Admin {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	admin, err := dao.NewAdminDAO(db).Insert(context.Background(), dao.Admin{
		Username:     username,
		PasswordHash: string(hash),
	})
	require.NoError(t, err)

	return admin
}

// NewTestRouter returns a bare gin engine in test mode.
func NewTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	return gin.New()
}
