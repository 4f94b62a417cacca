package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/dhc007/bolt91/internal/database"
)

// fakeOTPStore implements database.OTPStore in memory, ignoring TTL
type fakeOTPStore struct {
	codes   map[string]string
	lastTTL time.Duration
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{codes: make(map[string]string)}
}

func (f *fakeOTPStore) Set(ctx context.Context, mobile, otp string, ttl time.Duration) error {
	f.codes[mobile] = otp
	f.lastTTL = ttl
	return nil
}

func (f *fakeOTPStore) Get(ctx context.Context, mobile string) (string, error) {
	otp, ok := f.codes[mobile]
	if !ok {
		return "", database.ErrOTPNotFound
	}
	return otp, nil
}

func (f *fakeOTPStore) Delete(ctx context.Context, mobile string) error {
	delete(f.codes, mobile)
	return nil
}

func TestSendOTP(t *testing.T) {
	store := newFakeOTPStore()
	service := NewOTPService(store, testLogger())

	otp, err := service.Send(context.Background(), "9876543210")
	require.NoError(t, err)

	assert.Len(t, otp, 6)
	assert.Regexp(t, "^[0-9]{6}$", otp)
	assert.Equal(t, otp, store.codes["9876543210"])
	assert.Equal(t, OTPExpiry, store.lastTTL)
}

func TestSendOTP_ReplacesPendingCode(t *testing.T) {
	store := newFakeOTPStore()
	service := NewOTPService(store, testLogger())

	first, err := service.Send(context.Background(), "9876543210")
	require.NoError(t, err)
	second, err := service.Send(context.Background(), "9876543210")
	require.NoError(t, err)

	// Only the latest code verifies
	if first != second {
		assert.ErrorIs(t, service.Verify(context.Background(), "9876543210", first), ErrOTPInvalid)
	}
	assert.NoError(t, service.Verify(context.Background(), "9876543210", second))
}

func TestVerifyOTP_Success(t *testing.T) {
	store := newFakeOTPStore()
	service := NewOTPService(store, testLogger())

	otp, err := service.Send(context.Background(), "9876543210")
	require.NoError(t, err)

	assert.NoError(t, service.Verify(context.Background(), "9876543210", otp))
}

func TestVerifyOTP_OneTimeUse(t *testing.T) {
	store := newFakeOTPStore()
	service := NewOTPService(store, testLogger())

	otp, err := service.Send(context.Background(), "9876543210")
	require.NoError(t, err)

	require.NoError(t, service.Verify(context.Background(), "9876543210", otp))

	// A second attempt with the same code finds nothing pending
	err = service.Verify(context.Background(), "9876543210", otp)
	assert.ErrorIs(t, err, database.ErrOTPNotFound)
}

func TestVerifyOTP_Mismatch(t *testing.T) {
	store := newFakeOTPStore()
	service := NewOTPService(store, testLogger())

	_, err := service.Send(context.Background(), "9876543210")
	require.NoError(t, err)

	err = service.Verify(context.Background(), "9876543210", "000000")
	assert.ErrorIs(t, err, ErrOTPInvalid)

	// A failed attempt does not consume the pending code
	_, ok := store.codes["9876543210"]
	assert.True(t, ok)
}

func TestVerifyOTP_NothingPending(t *testing.T) {
	store := newFakeOTPStore()
	service := NewOTPService(store, testLogger())

	err := service.Verify(context.Background(), "9876543210", "123456")
	assert.ErrorIs(t, err, database.ErrOTPNotFound)
}

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		otp, err := generateRandomOTP()
		require.NoError(t, err)
		assert.Len(t, otp, 6)
		assert.Regexp(t, "^[0-9]{6}$", otp)
	}
}
