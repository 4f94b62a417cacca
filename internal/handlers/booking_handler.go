package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/dhc007/bolt91/internal/database"
	"github.com/dhc007/bolt91/internal/models"
	"github.com/dhc007/bolt91/internal/services"
	"github.com/dhc007/bolt91/pkg/razorpay"
)

// BookingHandler handles booking creation, retrieval and payment webhooks
type BookingHandler struct {
	bookingService *services.BookingService
	gateway        *razorpay.Client
	logger         *logrus.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *services.BookingService, gateway *razorpay.Client, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		gateway:        gateway,
		logger:         logger,
	}
}

// Create handles POST /api/booking/create
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrProductsNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Products not found"})
		default:
			h.logger.WithError(err).Error("Failed to create booking")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

// Get handles GET /api/booking/:booking_id
func (h *BookingHandler) Get(c *gin.Context) {
	bookingID := c.Param("booking_id")

	booking, err := h.bookingService.GetBooking(bookingID)
	if err != nil {
		if errors.Is(err, database.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}

		h.logger.WithError(err).Error("Failed to fetch booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// Webhook handles POST /api/payment/webhook. Gateway retries on
// non-2xx responses, so every ignorable condition is acknowledged
// with 200.
func (h *BookingHandler) Webhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.logger.WithError(err).Warn("Failed to read webhook body")
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	if err := h.gateway.VerifySignature(body, signature); err != nil {
		h.logger.WithError(err).Warn("Webhook signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	event, err := razorpay.ParseWebhook(body)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to parse webhook payload - ignoring")
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	if err := h.bookingService.HandleWebhook(event); err != nil {
		h.logger.WithError(err).Error("Failed to process payment webhook")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
