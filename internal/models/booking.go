package models

import (
	"errors"
	"time"
)

// PaymentStatus represents the payment status of a booking
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// BookingStatus represents the overall status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// CartItem is one product line within a booking request
type CartItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// EmergencyContact is the contact reached if something goes wrong mid-rental
type EmergencyContact struct {
	Name         string `json:"name"`
	Mobile       string `json:"mobile"`
	Relationship string `json:"relationship"`
}

// Booking represents a rental reservation and its payment lifecycle.
// TotalAmount and SecurityDeposit are a frozen quote: computed once at
// creation and never recomputed, even if catalog prices later change.
type Booking struct {
	ID        string `json:"id" db:"id"`
	BookingID string `json:"booking_id" db:"booking_id"`

	// Contact details
	Name   string  `json:"name" db:"name"`
	Mobile string  `json:"mobile" db:"mobile"`
	Email  *string `json:"email,omitempty" db:"email"`

	CartItems        CartItems        `json:"cart_items" db:"cart_items"`
	EmergencyContact EmergencyContact `json:"emergency_contact" db:"emergency_contact"`

	// Rental window, kept as the ISO date strings the client sent
	RentalStart string `json:"rental_start" db:"rental_start"`
	RentalEnd   string `json:"rental_end" db:"rental_end"`

	// Delivery address
	DeliveryAddress   string   `json:"delivery_address" db:"delivery_address"`
	DeliveryLatitude  *float64 `json:"delivery_latitude,omitempty" db:"delivery_latitude"`
	DeliveryLongitude *float64 `json:"delivery_longitude,omitempty" db:"delivery_longitude"`

	// Payment
	TotalAmount       float64       `json:"total_amount" db:"total_amount"`
	SecurityDeposit   float64       `json:"security_deposit" db:"security_deposit"`
	RazorpayOrderID   *string       `json:"razorpay_order_id,omitempty" db:"razorpay_order_id"`
	RazorpayPaymentID *string       `json:"razorpay_payment_id,omitempty" db:"razorpay_payment_id"`
	PaymentStatus     PaymentStatus `json:"payment_status" db:"payment_status"`
	PaymentLink       *string       `json:"payment_link,omitempty" db:"payment_link"`

	// KYC document references, attached after creation via upload
	KYCIDProof *string `json:"kyc_id_proof,omitempty" db:"kyc_id_proof"`
	KYCSelfie  *string `json:"kyc_selfie,omitempty" db:"kyc_selfie"`

	Status    BookingStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}

// CreateBookingRequest represents the request to create a booking
type CreateBookingRequest struct {
	Name   string  `json:"name" binding:"required"`
	Mobile string  `json:"mobile" binding:"required"`
	Email  *string `json:"email,omitempty"`

	CartItems []CartItem `json:"cart_items" binding:"required"`

	EmergencyContact EmergencyContact `json:"emergency_contact"`

	RentalStart string `json:"rental_start" binding:"required"`
	RentalEnd   string `json:"rental_end" binding:"required"`

	DeliveryAddress   string   `json:"delivery_address" binding:"required"`
	DeliveryLatitude  *float64 `json:"delivery_latitude,omitempty"`
	DeliveryLongitude *float64 `json:"delivery_longitude,omitempty"`
}

// Validate validates the create booking request
func (r *CreateBookingRequest) Validate() error {
	if r.Name == "" || r.Mobile == "" {
		return errors.New("name and mobile are required")
	}

	if r.EmergencyContact.Name == "" || r.EmergencyContact.Mobile == "" {
		return errors.New("emergency contact name and mobile are required")
	}

	if r.RentalStart == "" || r.RentalEnd == "" {
		return errors.New("rental_start and rental_end are required")
	}

	for _, item := range r.CartItems {
		if item.ProductID == "" {
			return errors.New("cart item product_id is required")
		}
		if item.Quantity < 1 {
			return errors.New("cart item quantity must be at least 1")
		}
	}

	return nil
}

// HasPaymentLink reports whether a payment link was attached to the booking
func (b *Booking) HasPaymentLink() bool {
	return b.PaymentLink != nil && *b.PaymentLink != ""
}

// IsPaymentCompleted reports whether the payment reached its terminal
// completed state
func (b *Booking) IsPaymentCompleted() bool {
	return b.PaymentStatus == PaymentStatusCompleted
}
