package account

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/authz"
	"marketplace/internal/db/dbtest"
	"marketplace/internal/domain"
	"marketplace/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const secret = "test-secret"

func newService(t *testing.T) (*Service, *gorm.DB, *miniredis.Miniredis) {
	t.Helper()
	store := dbtest.New(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewService(store, rdb, Options{JWTSecret: secret, JWTTTL: time.Hour, CacheTTL: time.Minute})
	return svc, store, mr
}

func TestRegisterClient(t *testing.T) {
	svc, store, _ := newService(t)

	res, err := svc.Register(context.Background(), RegisterInput{
		Email: "  Alice@Example.com", Password: "secret1", Name: "Alice", Role: domain.RoleClient,
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", res.User.Email)
	assert.Nil(t, res.Vendor)
	assert.NotEqual(t, "secret1", res.User.Password, "password must be hashed")

	claims, err := utils.ParseJWT(res.Token, secret)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)

	var vendors int64
	require.NoError(t, store.Model(&domain.Vendor{}).Count(&vendors).Error)
	assert.Zero(t, vendors)
}

func TestRegisterVendorCreatesProfile(t *testing.T) {
	svc, store, _ := newService(t)

	res, err := svc.Register(context.Background(), RegisterInput{
		Email: "shop@example.com", Password: "secret1", Name: "Shop", Role: domain.RoleVendor,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Vendor)

	var vendor domain.Vendor
	require.NoError(t, store.Where("user_id = ?", res.User.ID).First(&vendor).Error)
	assert.Equal(t, res.Vendor.ID, vendor.ID)
	assert.Nil(t, vendor.ExternalPaymentID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "secret1", Name: "One", Role: domain.RoleClient})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "DUP@example.com", Password: "secret2", Name: "Two", Role: domain.RoleVendor})
	assert.ErrorIs(t, err, domain.ErrConflict)

	var users, vendors int64
	require.NoError(t, store.Model(&domain.User{}).Count(&users).Error)
	require.NoError(t, store.Model(&domain.Vendor{}).Count(&vendors).Error)
	assert.Equal(t, int64(1), users)
	assert.Zero(t, vendors)
}

func TestRegisterValidation(t *testing.T) {
	svc, store, _ := newService(t)

	tests := []RegisterInput{
		{Email: "not-an-email", Password: "secret1", Name: "Al", Role: domain.RoleClient},
		{Email: "a@example.com", Password: "short", Name: "Al", Role: domain.RoleClient},
		{Email: "a@example.com", Password: "secret1", Name: "A", Role: domain.RoleClient},
		{Email: "a@example.com", Password: "secret1", Name: "Al", Role: "ADMIN"},
		{Email: "Al <al@example.com>", Password: "secret1", Name: "Al", Role: domain.RoleClient},
	}
	for _, in := range tests {
		_, err := svc.Register(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}

	var users int64
	require.NoError(t, store.Model(&domain.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{Email: "bob@example.com", Password: "secret1", Name: "Bob", Role: domain.RoleClient})
	require.NoError(t, err)

	res, err := svc.Login(ctx, "BOB@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, res.User.ID)
	assert.NotEmpty(t, res.Token)

	_, err = svc.Login(ctx, "bob@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestResolve(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	client, err := svc.Register(ctx, RegisterInput{Email: "c@example.com", Password: "secret1", Name: "Client", Role: domain.RoleClient})
	require.NoError(t, err)
	vendor, err := svc.Register(ctx, RegisterInput{Email: "v@example.com", Password: "secret1", Name: "Vendor", Role: domain.RoleVendor})
	require.NoError(t, err)

	id, err := svc.Resolve(ctx, client.User.ID)
	require.NoError(t, err)
	assert.Equal(t, authz.Identity{UserID: client.User.ID, Role: domain.RoleClient}, id)

	id, err = svc.Resolve(ctx, vendor.User.ID)
	require.NoError(t, err)
	assert.Equal(t, authz.Identity{UserID: vendor.User.ID, Role: domain.RoleVendor, VendorID: vendor.Vendor.ID}, id)

	_, err = svc.Resolve(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVendorProfileAndPaymentID(t *testing.T) {
	svc, _, mr := newService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{Email: "v@example.com", Password: "secret1", Name: "Vendor", Role: domain.RoleVendor})
	require.NoError(t, err)
	id, err := svc.Resolve(ctx, reg.User.ID)
	require.NoError(t, err)

	profile, err := svc.GetVendorByUserID(ctx, reg.User.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.User)
	assert.Equal(t, "Vendor", profile.User.Name)
	assert.True(t, mr.Exists(vendorCacheKey(reg.User.ID)), "profile should be cached")

	updated, err := svc.SetPaymentID(ctx, id, " pay_123 ")
	require.NoError(t, err)
	require.NotNil(t, updated.ExternalPaymentID)
	assert.Equal(t, "pay_123", *updated.ExternalPaymentID)

	// Setting the same value again is not a miss
	_, err = svc.SetPaymentID(ctx, id, "pay_123")
	require.NoError(t, err)

	_, err = svc.SetPaymentID(ctx, id, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.GetVendorByUserID(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetPaymentIDRequiresVendor(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{Email: "c@example.com", Password: "secret1", Name: "Client", Role: domain.RoleClient})
	require.NoError(t, err)

	_, err = svc.SetPaymentID(ctx, authz.Identity{UserID: reg.User.ID, Role: domain.RoleClient}, "pay_1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
