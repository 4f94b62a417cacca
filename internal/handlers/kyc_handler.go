package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/dhc007/bolt91/internal/database"
	"github.com/dhc007/bolt91/internal/services"
)

// KYCHandler handles KYC document uploads
type KYCHandler struct {
	kycService *services.KYCService
	logger     *logrus.Logger
}

// NewKYCHandler creates a new KYCHandler
func NewKYCHandler(kycService *services.KYCService, logger *logrus.Logger) *KYCHandler {
	return &KYCHandler{kycService: kycService, logger: logger}
}

// Upload handles POST /api/kyc/upload (multipart form: booking_id,
// id_proof, selfie)
func (h *KYCHandler) Upload(c *gin.Context) {
	bookingID := c.PostForm("booking_id")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking_id is required"})
		return
	}

	idProofHeader, err := c.FormFile("id_proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id_proof file is required"})
		return
	}
	selfieHeader, err := c.FormFile("selfie")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "selfie file is required"})
		return
	}

	idProof, err := idProofHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read id_proof"})
		return
	}
	defer idProof.Close()

	selfie, err := selfieHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read selfie"})
		return
	}
	defer selfie.Close()

	idProofRef, selfieRef, err := h.kycService.SaveDocuments(
		bookingID,
		idProofHeader.Filename, idProof,
		selfieHeader.Filename, selfie,
	)
	if err != nil {
		if errors.Is(err, database.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}

		h.logger.WithError(err).Error("Failed to upload KYC documents")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "KYC documents uploaded successfully",
		"id_proof": idProofRef,
		"selfie":   selfieRef,
	})
}
