package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/dhc007/bolt91/internal/database"
	"github.com/dhc007/bolt91/internal/services"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// memoryOTPStore implements database.OTPStore in memory
type memoryOTPStore struct {
	codes map[string]string
}

func newMemoryOTPStore() *memoryOTPStore {
	return &memoryOTPStore{codes: make(map[string]string)}
}

func (m *memoryOTPStore) Set(ctx context.Context, mobile, otp string, ttl time.Duration) error {
	m.codes[mobile] = otp
	return nil
}

func (m *memoryOTPStore) Get(ctx context.Context, mobile string) (string, error) {
	otp, ok := m.codes[mobile]
	if !ok {
		return "", database.ErrOTPNotFound
	}
	return otp, nil
}

func (m *memoryOTPStore) Delete(ctx context.Context, mobile string) error {
	delete(m.codes, mobile)
	return nil
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler(c)
	return w
}

func newOTPHandler(store *memoryOTPStore) *OTPHandler {
	return NewOTPHandler(services.NewOTPService(store, testLogger()), testLogger())
}

func TestSendOTP_EchoesCode(t *testing.T) {
	store := newMemoryOTPStore()
	handler := newOTPHandler(store)

	w := postJSON(t, handler.SendOTP, "/api/otp/send", gin.H{"mobile": "9876543210"})
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, true, response["success"])
	assert.Equal(t, "OTP sent successfully", response["message"])
	assert.Equal(t, store.codes["9876543210"], response["otp"])
}

func TestSendOTP_MissingMobile(t *testing.T) {
	handler := newOTPHandler(newMemoryOTPStore())

	w := postJSON(t, handler.SendOTP, "/api/otp/send", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyOTP_RoundTrip(t *testing.T) {
	store := newMemoryOTPStore()
	handler := newOTPHandler(store)

	postJSON(t, handler.SendOTP, "/api/otp/send", gin.H{"mobile": "9876543210"})
	otp := store.codes["9876543210"]

	w := postJSON(t, handler.VerifyOTP, "/api/otp/verify", gin.H{"mobile": "9876543210", "otp": otp})
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "OTP verified successfully", response["message"])

	// Code is consumed: a replay comes back 404
	w = postJSON(t, handler.VerifyOTP, "/api/otp/verify", gin.H{"mobile": "9876543210", "otp": otp})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	store := newMemoryOTPStore()
	store.codes["9876543210"] = "123456"
	handler := newOTPHandler(store)

	w := postJSON(t, handler.VerifyOTP, "/api/otp/verify", gin.H{"mobile": "9876543210", "otp": "000000"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Invalid OTP", response["error"])
}

func TestVerifyOTP_NothingPending(t *testing.T) {
	handler := newOTPHandler(newMemoryOTPStore())

	w := postJSON(t, handler.VerifyOTP, "/api/otp/verify", gin.H{"mobile": "9876543210", "otp": "123456"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
