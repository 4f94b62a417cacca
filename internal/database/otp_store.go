package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/dhc007/bolt91/internal/config"
)

// ErrOTPNotFound indicates no pending OTP exists for the mobile number
var ErrOTPNotFound = fmt.Errorf("no OTP found for this mobile number")

// OTPStore is the ephemeral one-time-password store, keyed by mobile number
type OTPStore interface {
	Set(ctx context.Context, mobile, otp string, ttl time.Duration) error
	Get(ctx context.Context, mobile string) (string, error)
	Delete(ctx context.Context, mobile string) error
}

// RedisOTPStore implements OTPStore on Redis. Entries expire on their own,
// so stale codes never need cleanup.
type RedisOTPStore struct {
	client *redis.Client
}

// NewRedisClient creates a Redis client from configuration and verifies
// the connection
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// NewRedisOTPStore creates a new RedisOTPStore
func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

func otpKey(mobile string) string {
	return fmt.Sprintf("otp:%s", mobile)
}

// Set stores the OTP for the mobile number, replacing any pending one
func (s *RedisOTPStore) Set(ctx context.Context, mobile, otp string, ttl time.Duration) error {
	if err := s.client.Set(ctx, otpKey(mobile), otp, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}
	return nil
}

// Get returns the pending OTP for the mobile number
func (s *RedisOTPStore) Get(ctx context.Context, mobile string) (string, error) {
	otp, err := s.client.Get(ctx, otpKey(mobile)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrOTPNotFound
		}
		return "", fmt.Errorf("failed to get OTP: %w", err)
	}
	return otp, nil
}

// Delete removes the pending OTP for the mobile number
func (s *RedisOTPStore) Delete(ctx context.Context, mobile string) error {
	if err := s.client.Del(ctx, otpKey(mobile)).Err(); err != nil {
		return fmt.Errorf("failed to delete OTP: %w", err)
	}
	return nil
}
