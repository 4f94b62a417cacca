package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/dhc007/bolt91/internal/database"
	"github.com/dhc007/bolt91/internal/services"
)

// OTPHandler handles the mock OTP login endpoints
type OTPHandler struct {
	otpService *services.OTPService
	logger     *logrus.Logger
}

// NewOTPHandler creates a new OTPHandler
func NewOTPHandler(otpService *services.OTPService, logger *logrus.Logger) *OTPHandler {
	return &OTPHandler{otpService: otpService, logger: logger}
}

// SendOTPRequest represents the request to send an OTP
type SendOTPRequest struct {
	Mobile string `json:"mobile" binding:"required"`
}

// VerifyOTPRequest represents the request to verify an OTP
type VerifyOTPRequest struct {
	Mobile string `json:"mobile" binding:"required"`
	OTP    string `json:"otp" binding:"required"`
}

// SendOTP handles POST /api/otp/send.
// The generated code is returned in the response body - mock behavior kept
// for client parity; a real deployment must deliver it out of band instead.
func (h *OTPHandler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	otp, err := h.otpService.Send(c.Request.Context(), req.Mobile)
	if err != nil {
		h.logger.WithError(err).Error("Failed to send OTP")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP sent successfully",
		"otp":     otp,
	})
}

// VerifyOTP handles POST /api/otp/verify
func (h *OTPHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	err := h.otpService.Verify(c.Request.Context(), req.Mobile, req.OTP)
	if err != nil {
		if errors.Is(err, database.ErrOTPNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "OTP not found"})
			return
		}
		if errors.Is(err, services.ErrOTPInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
			return
		}

		h.logger.WithError(err).Error("Failed to verify OTP")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP verified successfully",
	})
}
