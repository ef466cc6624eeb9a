package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImageKey(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantType string
		wantErr  bool
	}{
		{name: "png", filename: "stone.png", size: 10, wantType: "image/png"},
		{name: "upper case jpeg", filename: "STONE.JPEG", size: 10, wantType: "image/jpeg"},
		{name: "webp", filename: "a.webp", size: MaxImageSize, wantType: "image/webp"},
		{name: "too large", filename: "a.png", size: MaxImageSize + 1, wantErr: true},
		{name: "empty", filename: "a.png", size: 0, wantErr: true},
		{name: "gif", filename: "a.gif", size: 10, wantErr: true},
		{name: "pdf", filename: "a.pdf", size: 10, wantErr: true},
		{name: "no extension", filename: "png", size: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, contentType, err := NewImageKey(tt.filename, tt.size)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidImage)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantType, contentType)
			assert.True(t, strings.HasPrefix(key, "gem_"))
			assert.True(t, IsImageKey(key))
		})
	}
}

func TestIsImageKey(t *testing.T) {
	assert.True(t, IsImageKey("gem_1.png"))
	assert.False(t, IsImageKey("../secret.png"))
	assert.False(t, IsImageKey("invoices/invoice_1.pdf"))
	assert.False(t, IsImageKey("invoice_1.pdf"))
	assert.False(t, IsImageKey(`a\b.png`))
	assert.False(t, IsImageKey(""))
}

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/api/v1/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "invoices/invoice_1.pdf", strings.NewReader("%PDF-1.3"), 8, "application/pdf"))

	rc, err := store.Get(ctx, "invoices/invoice_1.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))

	url, err := store.URL(ctx, "gem_1.png")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/uploads/gem_1.png", url)

	require.NoError(t, store.Delete(ctx, "invoices/invoice_1.pdf"))
	require.NoError(t, store.Delete(ctx, "invoices/invoice_1.pdf"))

	_, err = store.Get(ctx, "invoices/invoice_1.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"../escape.png", "/etc/passwd", "a//b", `a\..\b`, ""} {
		assert.ErrorIs(t, store.Put(ctx, key, strings.NewReader("x"), 1, ""), ErrInvalidKey, key)
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("invoices/invoice_3.pdf"))
	assert.Equal(t, "image/jpeg", ContentType("gem_x.JPG"))
	assert.Equal(t, "application/octet-stream", ContentType("notes.txt"))
}
