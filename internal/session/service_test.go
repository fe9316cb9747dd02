package session

import (
	"context"
	"testing"
	"time"

	"mandi-core/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupService(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Identity{}))
	return NewService(db, 0, 5*time.Second)
}

func loggedInCount(t *testing.T, s *Service) int64 {
	var n int64
	require.NoError(t, s.DB.Model(&domain.Identity{}).Where("logged_in = ?", true).Count(&n).Error)
	return n
}

func TestLoginPromotesSingleIdentity(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	id, err := s.Login(ctx, "9876543210", domain.RoleFarmer)
	require.NoError(t, err)
	assert.True(t, id.LoggedIn)
	assert.Equal(t, domain.RoleFarmer, id.Role)
	assert.EqualValues(t, 1, loggedInCount(t, s))
}

func TestAtMostOneLoggedInAcrossSequences(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "9876543210", domain.RoleFarmer)
	require.NoError(t, err)
	_, err = s.Login(ctx, "9811111111", domain.RoleBuyer)
	require.NoError(t, err)
	_, err = s.Register(ctx, "Asha", "9822222222", "1234", domain.RoleDriver)
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))
	_, err = s.Login(ctx, "9876543210", domain.RoleTrader)
	require.NoError(t, err)

	assert.EqualValues(t, 1, loggedInCount(t, s))
	cur := s.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "9876543210", cur.PhoneNumber)
}

func TestLoginResolvesExistingIdentity(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	first, err := s.Register(ctx, "Asha", "9876543210", "1234", domain.RoleFarmer)
	require.NoError(t, err)
	second, err := s.Login(ctx, "9876543210", domain.RoleFarmer)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Asha", second.Name)
}

func TestRegisterStoresHashedPin(t *testing.T) {
	s := setupService(t)
	id, err := s.Register(context.Background(), "Asha", "9876543210", "4321", domain.RoleFarmer)
	require.NoError(t, err)

	var stored domain.Identity
	require.NoError(t, s.DB.First(&stored, "id = ?", id.ID).Error)
	assert.NotEqual(t, "4321", stored.PinHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PinHash), []byte("4321")))
}

func TestVerifyOTPSentinel(t *testing.T) {
	s := setupService(t)
	id, err := s.VerifyOTP(context.Background(), "9876543210", "123456")
	require.NoError(t, err)
	assert.True(t, id.LoggedIn)
	assert.EqualValues(t, 1, loggedInCount(t, s))
}

func TestVerifyOTPRejectsOtherCodesWithoutMutation(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	before, err := s.Login(ctx, "9811111111", domain.RoleBuyer)
	require.NoError(t, err)

	_, err = s.VerifyOTP(ctx, "9876543210", "000000")
	assert.ErrorIs(t, err, ErrInvalidOTP)

	// session state unchanged: same single identity still logged in
	assert.EqualValues(t, 1, loggedInCount(t, s))
	cur := s.Current()
	require.NotNil(t, cur)
	assert.Equal(t, before.ID, cur.ID)

	var n int64
	require.NoError(t, s.DB.Model(&domain.Identity{}).Count(&n).Error)
	assert.EqualValues(t, 1, n, "no identity fabricated on failure")
}

func TestVerifyPINSucceedsRegardlessOfPin(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "Asha", "9876543210", "1234", domain.RoleFarmer)
	require.NoError(t, err)

	id, err := s.VerifyPIN(ctx, "9876543210", "9999")
	require.NoError(t, err)
	assert.True(t, id.LoggedIn)
}

func TestLogoutKeepsRecords(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "Asha", "9876543210", "1234", domain.RoleFarmer)
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))

	assert.EqualValues(t, 0, loggedInCount(t, s))
	var n int64
	require.NoError(t, s.DB.Model(&domain.Identity{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
	assert.Nil(t, s.Current())
}

func TestObserveLoggedInEmitsOnEachSettle(t *testing.T) {
	s := setupService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.ObserveLoggedIn(ctx)
	assert.Nil(t, <-ch, "replay: nobody logged in yet")

	_, err := s.Login(context.Background(), "9876543210", domain.RoleFarmer)
	require.NoError(t, err)
	got := <-ch
	require.NotNil(t, got)
	assert.Equal(t, "9876543210", got.PhoneNumber)

	require.NoError(t, s.Logout(context.Background()))
	assert.Nil(t, <-ch)
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	s := setupService(t)
	_, err := s.Login(context.Background(), "9876543210", domain.RoleNone)
	assert.ErrorIs(t, err, ErrRoleRequired)
}

func TestSimulatedLatencyHonoursCancellation(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Identity{}))
	s := NewService(db, 500*time.Millisecond, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Login(ctx, "9876543210", domain.RoleFarmer)
	assert.ErrorIs(t, err, ErrTransport)
	assert.EqualValues(t, 0, loggedInCount(t, s))
}
