package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/dhc007/bolt91/internal/models"
)

// newMockDB wraps a sqlmock connection in the DB interface via sqlx so
// Get and Select work against mocked rows
func newMockDB(t *testing.T) (DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return &PostgresDB{DB: sqlx.NewDb(mockDB, "sqlmock")}, mock
}

func TestCreateBooking_AssignsIdentifiers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	// Code uniqueness check finds no collision
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	booking := &models.Booking{
		Name:   "Asha Verma",
		Mobile: "9876543210",
		CartItems: models.CartItems{
			{ProductID: "cycle-1", Quantity: 1},
		},
		EmergencyContact: models.EmergencyContact{Name: "Ravi Verma", Mobile: "9123456780"},
		RentalStart:      "2026-03-01",
		RentalEnd:        "2026-03-04",
		DeliveryAddress:  "14 MG Road, Pune",
		TotalAmount:      1347,
		SecurityDeposit:  2000,
		PaymentStatus:    models.PaymentStatusPending,
		Status:           models.BookingStatusPending,
	}

	err := repo.Create(booking)
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.Regexp(t, "^BB[0-9]{5}$", booking.BookingID)
	assert.False(t, booking.CreatedAt.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateBookingCode_RetriesOnCollision(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	// First candidate collides, second is free
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	code, err := repo.GenerateBookingCode()
	require.NoError(t, err)
	assert.Regexp(t, "^BB[0-9]{5}$", code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByBookingID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "booking_id", "name", "mobile", "email", "cart_items", "emergency_contact",
		"rental_start", "rental_end", "delivery_address", "delivery_latitude", "delivery_longitude",
		"total_amount", "security_deposit", "razorpay_order_id", "razorpay_payment_id",
		"payment_status", "payment_link", "kyc_id_proof", "kyc_selfie", "status", "created_at",
	}).AddRow(
		"uuid-1", "BB12345", "Asha Verma", "9876543210", nil,
		[]byte(`[{"product_id":"cycle-1","quantity":1}]`),
		[]byte(`{"name":"Ravi Verma","mobile":"9123456780","relationship":"brother"}`),
		"2026-03-01", "2026-03-04", "14 MG Road, Pune", nil, nil,
		1347.0, 2000.0, nil, nil,
		"pending", nil, nil, nil, "pending", createdAt,
	)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE booking_id").
		WithArgs("BB12345").
		WillReturnRows(rows)

	booking, err := repo.GetByBookingID("BB12345")
	require.NoError(t, err)

	assert.Equal(t, "BB12345", booking.BookingID)
	require.Len(t, booking.CartItems, 1)
	assert.Equal(t, "cycle-1", booking.CartItems[0].ProductID)
	assert.Equal(t, "Ravi Verma", booking.EmergencyContact.Name)
	assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByBookingID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE booking_id").
		WithArgs("BB00000").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByBookingID("BB00000")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestAttachPaymentLink(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectExec("UPDATE bookings").
		WithArgs("plink_123", "https://rzp.io/l/abc", "BB12345").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AttachPaymentLink("BB12345", "plink_123", "https://rzp.io/l/abc")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionPayment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectExec("UPDATE bookings").
		WithArgs(string(models.PaymentStatusCompleted), string(models.BookingStatusConfirmed), "pay_99", "plink_123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	transitioned, err := repo.TransitionPayment("plink_123", "pay_99")
	require.NoError(t, err)
	assert.True(t, transitioned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionPayment_NoMatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	// Unknown order id, or booking already completed: zero rows transition
	mock.ExpectExec("UPDATE bookings").
		WithArgs(string(models.PaymentStatusCompleted), string(models.BookingStatusConfirmed), "pay_99", "plink_ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	transitioned, err := repo.TransitionPayment("plink_ghost", "pay_99")
	require.NoError(t, err)
	assert.False(t, transitioned)
}

func TestAttachKYC(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectExec("UPDATE bookings").
		WithArgs("uploads/BB12345_id_proof_a.jpg", "uploads/BB12345_selfie_b.jpg", "BB12345").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AttachKYC("BB12345", "uploads/BB12345_id_proof_a.jpg", "uploads/BB12345_selfie_b.jpg")
	assert.NoError(t, err)
}

func TestAttachKYC_UnknownBooking(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AttachKYC("BB00000", "a", "b")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
