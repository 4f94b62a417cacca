package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/dhc007/bolt91/internal/database"
)

// OTPExpiry is how long a sent OTP stays valid
const OTPExpiry = 5 * time.Minute

// ErrOTPInvalid indicates the submitted OTP does not match the pending one
var ErrOTPInvalid = fmt.Errorf("invalid OTP code")

// OTPService handles the mock OTP login flow. Codes live in the ephemeral
// store and expire on their own.
type OTPService struct {
	store  database.OTPStore
	logger *logrus.Logger
}

// NewOTPService creates a new OTPService
func NewOTPService(store database.OTPStore, logger *logrus.Logger) *OTPService {
	return &OTPService{store: store, logger: logger}
}

// Send generates a 6-digit OTP for the mobile number, replacing any
// pending one, and returns the code. This is a mock flow: the code goes
// back to the caller and nothing actually sends an SMS.
func (s *OTPService) Send(ctx context.Context, mobile string) (string, error) {
	otp, err := generateRandomOTP()
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}

	if err := s.store.Set(ctx, mobile, otp, OTPExpiry); err != nil {
		return "", err
	}

	s.logger.WithField("mobile", mobile).Info("Mock OTP sent")

	return otp, nil
}

// Verify checks the submitted OTP against the pending one and consumes it
// on success. Returns database.ErrOTPNotFound when nothing is pending and
// ErrOTPInvalid on mismatch.
func (s *OTPService) Verify(ctx context.Context, mobile, otp string) error {
	stored, err := s.store.Get(ctx, mobile)
	if err != nil {
		return err
	}

	if stored != otp {
		return ErrOTPInvalid
	}

	// One-time use: drop the code once verified
	if err := s.store.Delete(ctx, mobile); err != nil {
		return err
	}

	return nil
}

// generateRandomOTP generates a cryptographically secure random 6-digit OTP
func generateRandomOTP() (string, error) {
	max := big.NewInt(1000000) // 10^6
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}
