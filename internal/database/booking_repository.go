package database

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/dhc007/bolt91/internal/models"
)

// ErrBookingNotFound indicates no booking matches the given identifier
var ErrBookingNotFound = fmt.Errorf("booking not found")

// BookingRepository handles booking database operations
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, booking_id, name, mobile, email, cart_items, emergency_contact,
	rental_start, rental_end, delivery_address, delivery_latitude, delivery_longitude,
	total_amount, security_deposit, razorpay_order_id, razorpay_payment_id,
	payment_status, payment_link, kyc_id_proof, kyc_selfie, status, created_at`

// GenerateBookingCode generates a unique human-facing booking code.
// Format: BB + 5 digits, e.g. BB48213.
func (r *BookingRepository) GenerateBookingCode() (string, error) {
	for attempts := 0; attempts < 10; attempts++ {
		n, err := rand.Int(rand.Reader, big.NewInt(90000))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		code := fmt.Sprintf("BB%d", n.Int64()+10000)

		var count int
		if err := r.db.Get(&count, `SELECT COUNT(*) FROM bookings WHERE booking_id = $1`, code); err != nil {
			return "", fmt.Errorf("failed to check code uniqueness: %w", err)
		}

		if count == 0 {
			return code, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique booking code after 10 attempts")
}

// Create persists a new booking. It assigns the internal id, the
// human-facing booking code and the creation timestamp.
func (r *BookingRepository) Create(booking *models.Booking) error {
	booking.ID = uuid.New().String()
	booking.CreatedAt = time.Now().UTC()

	code, err := r.GenerateBookingCode()
	if err != nil {
		return err
	}
	booking.BookingID = code

	query := `
		INSERT INTO bookings (
			id, booking_id, name, mobile, email, cart_items, emergency_contact,
			rental_start, rental_end, delivery_address, delivery_latitude, delivery_longitude,
			total_amount, security_deposit, razorpay_order_id, razorpay_payment_id,
			payment_status, payment_link, kyc_id_proof, kyc_selfie, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22
		)`

	_, err = r.db.Exec(query,
		booking.ID, booking.BookingID, booking.Name, booking.Mobile, booking.Email,
		booking.CartItems, booking.EmergencyContact,
		booking.RentalStart, booking.RentalEnd,
		booking.DeliveryAddress, booking.DeliveryLatitude, booking.DeliveryLongitude,
		booking.TotalAmount, booking.SecurityDeposit,
		booking.RazorpayOrderID, booking.RazorpayPaymentID,
		booking.PaymentStatus, booking.PaymentLink,
		booking.KYCIDProof, booking.KYCSelfie,
		booking.Status, booking.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByBookingID retrieves a booking by its human-facing code
func (r *BookingRepository) GetByBookingID(bookingID string) (*models.Booking, error) {
	booking := &models.Booking{}
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE booking_id = $1`, bookingColumns)

	if err := r.db.Get(booking, query, bookingID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

// AttachPaymentLink records the gateway order id and hosted link on a
// booking. The fields are set-once: the guard on razorpay_order_id makes a
// repeated call a no-op instead of an overwrite.
func (r *BookingRepository) AttachPaymentLink(bookingID, orderID, link string) error {
	query := `
		UPDATE bookings
		SET razorpay_order_id = $1, payment_link = $2
		WHERE booking_id = $3 AND razorpay_order_id IS NULL
	`

	if _, err := r.db.Exec(query, orderID, link, bookingID); err != nil {
		return fmt.Errorf("failed to attach payment link: %w", err)
	}

	return nil
}

// TransitionPayment moves a booking to the completed payment state, looked
// up by the gateway order id. payment_status, status and the gateway
// payment id mutate together in one conditional update; the guard on
// payment_status makes webhook redelivery a safe no-op. Returns whether a
// row transitioned.
func (r *BookingRepository) TransitionPayment(gatewayOrderID, gatewayPaymentID string) (bool, error) {
	query := `
		UPDATE bookings
		SET payment_status = $1, status = $2, razorpay_payment_id = $3
		WHERE razorpay_order_id = $4 AND payment_status <> $1
	`

	result, err := r.db.Exec(query,
		models.PaymentStatusCompleted, models.BookingStatusConfirmed,
		gatewayPaymentID, gatewayOrderID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to transition payment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// AttachKYC records the stored document references on a booking
func (r *BookingRepository) AttachKYC(bookingID, idProofRef, selfieRef string) error {
	query := `
		UPDATE bookings
		SET kyc_id_proof = $1, kyc_selfie = $2
		WHERE booking_id = $3
	`

	result, err := r.db.Exec(query, idProofRef, selfieRef, bookingID)
	if err != nil {
		return fmt.Errorf("failed to attach KYC documents: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrBookingNotFound
	}

	return nil
}
