package service

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sphenegem/gem-inventory-api/internal/domain"
	"github.com/sphenegem/gem-inventory-api/internal/repository"
	"github.com/sphenegem/gem-inventory-api/internal/repository/dao"
	"github.com/sphenegem/gem-inventory-api/internal/storage"
	"github.com/sphenegem/gem-inventory-api/internal/testutil"
)

func newGemstoneService(t *testing.T) (*GemstoneService, storage.ObjectStore, *countingInvalidator) {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	store, err := storage.NewLocalStore(t.TempDir(), "/api/v1/uploads")
	require.NoError(t, err)
	stats := &countingInvalidator{}

	return NewGemstoneService(repository.NewGemstoneRepository(dao.NewGemstoneDAO(db)), store, stats), store, stats
}

func sphene() domain.Gemstone {
	return domain.Gemstone{
		Code:          "SPH-01",
		Name:          "Sphene",
		Quantity:      5,
		Weight:        decimal.RequireFromString("3.0"),
		PricePerCarat: decimal.NewFromInt(100),
		Shape:         "oval",
	}
}

func png(content string) *ImageUpload {
	return &ImageUpload{Filename: "stone.png", Size: int64(len(content)), Body: strings.NewReader(content)}
}

func objectExists(t *testing.T, store storage.ObjectStore, key string) bool {
	t.Helper()

	rc, err := store.Get(context.Background(), key)
	if err != nil {
		return false
	}
	_ = rc.Close()

	return true
}

func TestGemstoneService_Create(t *testing.T) {
	svc, store, stats := newGemstoneService(t)
	ctx := context.Background()

	created, err := svc.CreateGemstone(ctx, sphene(), png("img"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.TotalPrice.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "/api/v1/uploads/"+created.ImageKey, created.ImageURL)
	assert.True(t, objectExists(t, store, created.ImageKey))
	assert.Equal(t, int32(1), stats.n.Load())

	_, err = svc.CreateGemstone(ctx, sphene(), nil)
	assert.ErrorIs(t, err, ErrGemstoneCodeExists)

	bad := sphene()
	bad.Code = "OTHER"
	_, err = svc.CreateGemstone(ctx, bad, &ImageUpload{Filename: "stone.gif", Size: 3, Body: strings.NewReader("gif")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad.Shape = ""
	_, err = svc.CreateGemstone(ctx, bad, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGemstoneService_UpdateReplacesImage(t *testing.T) {
	svc, store, _ := newGemstoneService(t)
	ctx := context.Background()

	created, err := svc.CreateGemstone(ctx, sphene(), png("old"))
	require.NoError(t, err)

	edit := sphene()
	edit.Weight = decimal.RequireFromString("2.5")
	updated, err := svc.UpdateGemstone(ctx, created.ID, edit, nil)
	require.NoError(t, err)
	assert.Equal(t, created.ImageKey, updated.ImageKey)
	assert.True(t, updated.TotalPrice.Equal(decimal.NewFromInt(250)))

	replaced, err := svc.UpdateGemstone(ctx, created.ID, edit, png("new"))
	require.NoError(t, err)
	assert.NotEqual(t, created.ImageKey, replaced.ImageKey)
	assert.False(t, objectExists(t, store, created.ImageKey))
	assert.True(t, objectExists(t, store, replaced.ImageKey))

	_, err = svc.UpdateGemstone(ctx, 404, edit, nil)
	assert.ErrorIs(t, err, ErrGemstoneNotFound)
}

func TestGemstoneService_DeleteHidesGemstone(t *testing.T) {
	svc, _, _ := newGemstoneService(t)
	ctx := context.Background()

	created, err := svc.CreateGemstone(ctx, sphene(), nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGemstone(ctx, created.ID))

	_, err = svc.GetGemstone(ctx, created.ID)
	assert.ErrorIs(t, err, ErrGemstoneNotFound)

	page, err := svc.ListGemstones(ctx, domain.PageQuery{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Empty(t, page.Items)

	found, err := svc.SearchGemstones(ctx, "sph")
	require.NoError(t, err)
	assert.Empty(t, found)

	assert.ErrorIs(t, svc.DeleteGemstone(ctx, created.ID), ErrGemstoneNotFound)
}
