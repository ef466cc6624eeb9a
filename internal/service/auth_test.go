package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sphenegem/gem-inventory-api/internal/domain"
	"github.com/sphenegem/gem-inventory-api/internal/pkg/jwthelper"
	"github.com/sphenegem/gem-inventory-api/internal/repository"
	"github.com/sphenegem/gem-inventory-api/internal/repository/dao"
	"github.com/sphenegem/gem-inventory-api/internal/testutil"
)

var testSigningKey = []byte("test-signing-key")

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	testutil.SeedAdmin(t, db, "admin", "s3cretpass")

	return NewAuthService(
		repository.NewAdminRepository(dao.NewAdminDAO(db)),
		jwthelper.NewIssuer(testSigningKey, 24*time.Hour),
	)
}

func TestAuthService_Authenticate(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	session, err := svc.Authenticate(ctx, domain.Credentials{Username: "admin", Password: "s3cretpass", UserAgent: "test"})
	require.NoError(t, err)
	assert.Equal(t, "admin", session.Admin.Username)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), session.ExpiresAt, time.Minute)

	claims, err := jwthelper.ParseToken(testSigningKey, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Admin.ID, claims.AdminID)

	_, wrongPassword := svc.Authenticate(ctx, domain.Credentials{Username: "admin", Password: "nope"})
	_, unknownUser := svc.Authenticate(ctx, domain.Credentials{Username: "ghost", Password: "s3cretpass"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	session, err := svc.Authenticate(ctx, domain.Credentials{Username: "admin", Password: "s3cretpass"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, session.Admin.ID, "wrong", "n3wpassword")
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(ctx, session.Admin.ID, "s3cretpass", "n3wpassword"))

	_, err = svc.Authenticate(ctx, domain.Credentials{Username: "admin", Password: "s3cretpass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, domain.Credentials{Username: "admin", Password: "n3wpassword"})
	assert.NoError(t, err)

	err = svc.ChangePassword(ctx, 999, "x", "y")
	assert.ErrorIs(t, err, ErrAdminNotFound)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	created, isNew, err := svc.EnsureAdmin(ctx, "owner", "firstpass1")
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.NotZero(t, created.ID)

	again, isNew, err := svc.EnsureAdmin(ctx, "owner", "secondpass2")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, created.ID, again.ID)

	_, err = svc.Authenticate(ctx, domain.Credentials{Username: "owner", Password: "secondpass2"})
	assert.NoError(t, err)

	me, err := svc.GetAdmin(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner", me.Username)
}
