package services

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/dhc007/bolt91/internal/models"
	"github.com/dhc007/bolt91/pkg/razorpay"
)

var (
	// ErrProductsNotFound indicates no cart line resolved to a catalog
	// product
	ErrProductsNotFound = fmt.Errorf("products not found")

	// ErrInvalidRequest indicates the booking request failed validation
	ErrInvalidRequest = fmt.Errorf("invalid booking request")
)

// BookingStore is the durable booking record contract
type BookingStore interface {
	Create(booking *models.Booking) error
	GetByBookingID(bookingID string) (*models.Booking, error)
	AttachPaymentLink(bookingID, orderID, link string) error
	TransitionPayment(gatewayOrderID, gatewayPaymentID string) (bool, error)
}

// ProductResolver resolves product ids to catalog records
type ProductResolver interface {
	GetByIDs(ids []string) (map[string]models.Product, error)
}

// PaymentGateway creates hosted payment links
type PaymentGateway interface {
	IsConfigured() bool
	CreatePaymentLink(ctx context.Context, req *razorpay.PaymentLinkRequest) (*razorpay.PaymentLink, error)
}

// BookingService orchestrates booking creation and the payment lifecycle
type BookingService struct {
	bookings BookingStore
	products ProductResolver
	gateway  PaymentGateway
	logger   *logrus.Logger

	// publicBaseURL is the externally reachable base used for the payment
	// callback URL
	publicBaseURL string
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookings BookingStore,
	products ProductResolver,
	gateway PaymentGateway,
	publicBaseURL string,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookings:      bookings,
		products:      products,
		gateway:       gateway,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

// CreateBooking validates the request, prices the cart, persists a pending
// booking and then attempts to create a payment link for the grand total.
//
// The booking is persisted before the gateway call: a crash or timeout
// while talking to the gateway leaves a recoverable pending booking with no
// link rather than losing the record. A gateway failure is logged and
// swallowed; the booking is returned without a link.
func (s *BookingService) CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	start, err := ParseRentalDate(req.RentalStart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	end, err := ParseRentalDate(req.RentalEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: rental_end is before rental_start", ErrInvalidRequest)
	}

	if len(req.CartItems) == 0 {
		return nil, ErrProductsNotFound
	}

	productIDs := make([]string, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.products.GetByIDs(productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart products: %w", err)
	}
	if len(products) == 0 {
		return nil, ErrProductsNotFound
	}

	quote, err := ComputeQuote(req.CartItems, products, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	booking := &models.Booking{
		Name:              req.Name,
		Mobile:            req.Mobile,
		Email:             req.Email,
		CartItems:         models.CartItems(req.CartItems),
		EmergencyContact:  req.EmergencyContact,
		RentalStart:       req.RentalStart,
		RentalEnd:         req.RentalEnd,
		DeliveryAddress:   req.DeliveryAddress,
		DeliveryLatitude:  req.DeliveryLatitude,
		DeliveryLongitude: req.DeliveryLongitude,
		TotalAmount:       quote.RentalTotal,
		SecurityDeposit:   quote.SecurityDeposit,
		PaymentStatus:     models.PaymentStatusPending,
		Status:            models.BookingStatusPending,
	}

	if err := s.bookings.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":       booking.BookingID,
		"num_days":         quote.NumDays,
		"total_amount":     quote.RentalTotal,
		"security_deposit": quote.SecurityDeposit,
	}).Info("Booking created")

	s.requestPaymentLink(ctx, booking, quote.GrandTotal)

	return booking, nil
}

// requestPaymentLink asks the gateway for a hosted link covering the grand
// total and attaches it to the booking. Every failure path degrades to a
// linkless booking flagged for operator follow-up.
func (s *BookingService) requestPaymentLink(ctx context.Context, booking *models.Booking, grandTotal float64) {
	if !s.gateway.IsConfigured() {
		s.logger.WithField("booking_id", booking.BookingID).
			Warn("Payment gateway not configured - booking created without payment link")
		return
	}

	email := fmt.Sprintf("%s@bolt91.com", booking.Mobile)
	if booking.Email != nil && *booking.Email != "" {
		email = *booking.Email
	}

	req := &razorpay.PaymentLinkRequest{
		Amount:      int64(math.Round(grandTotal * 100)), // paise
		Currency:    "INR",
		Description: fmt.Sprintf("Bolt91 E-Bike Rental - Booking %s", booking.BookingID),
		Customer: razorpay.Customer{
			Name:    booking.Name,
			Contact: booking.Mobile,
			Email:   email,
		},
		Notify:         razorpay.Notify{SMS: false, Email: false},
		ReminderEnable: false,
		CallbackURL:    fmt.Sprintf("%s/payment-success?booking_id=%s", s.publicBaseURL, booking.BookingID),
		CallbackMethod: "get",
	}

	link, err := s.gateway.CreatePaymentLink(ctx, req)
	if err != nil {
		s.logger.WithError(err).WithField("booking_id", booking.BookingID).
			Error("Failed to create payment link - continuing without one")
		return
	}

	if err := s.bookings.AttachPaymentLink(booking.BookingID, link.ID, link.ShortURL); err != nil {
		s.logger.WithError(err).WithField("booking_id", booking.BookingID).
			Error("Failed to store payment link on booking")
		return
	}

	booking.RazorpayOrderID = &link.ID
	booking.PaymentLink = &link.ShortURL

	s.logger.WithFields(logrus.Fields{
		"booking_id":   booking.BookingID,
		"payment_link": link.ShortURL,
	}).Info("Payment link attached to booking")
}

// GetBooking retrieves a booking by its human-facing code
func (s *BookingService) GetBooking(bookingID string) (*models.Booking, error) {
	return s.bookings.GetByBookingID(bookingID)
}

// HandleWebhook reconciles a gateway webhook event against stored
// bookings. Only the payment_link.paid variant acts; everything ignorable
// (unhandled kinds, missing identifiers, unknown order ids, replayed
// events) is logged and dropped so the gateway never retries forever.
// Redelivery of a paid event is idempotent: the underlying transition only
// matches bookings not yet completed.
func (s *BookingService) HandleWebhook(event *razorpay.WebhookEvent) error {
	if event.Kind != razorpay.EventPaymentLinkPaid {
		s.logger.WithField("event", event.RawEvent).Debug("Ignoring unhandled webhook event")
		return nil
	}

	if event.PaymentLinkID == "" || event.PaymentID == "" {
		s.logger.WithFields(logrus.Fields{
			"payment_link_id": event.PaymentLinkID,
			"payment_id":      event.PaymentID,
		}).Warn("Webhook missing identifiers - ignoring")
		return nil
	}

	transitioned, err := s.bookings.TransitionPayment(event.PaymentLinkID, event.PaymentID)
	if err != nil {
		return fmt.Errorf("failed to process payment webhook: %w", err)
	}

	if !transitioned {
		// Either the order id is unknown (webhook raced ahead or belongs
		// to another system) or the booking is already completed
		// (redelivery). Both are safe to drop.
		s.logger.WithField("payment_link_id", event.PaymentLinkID).
			Info("Webhook matched no pending booking - ignoring")
		return nil
	}

	s.logger.WithFields(logrus.Fields{
		"payment_link_id": event.PaymentLinkID,
		"payment_id":      event.PaymentID,
	}).Info("Payment completed for booking")

	return nil
}
