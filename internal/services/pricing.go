package services

import (
	"fmt"
	"time"

	"github.com/dhc007/bolt91/internal/models"
)

const (
	// Security deposit tiers for cycle rentals. Accessories never attract
	// a deposit.
	depositShortTerm = 2000.0 // 1-7 days
	depositLongTerm  = 5000.0 // 8+ days

	// Rentals longer than this many days fall into the long-term deposit tier
	shortTermMaxDays = 7
)

var (
	// ErrEmptyCart indicates the booking request carried no cart lines
	ErrEmptyCart = fmt.Errorf("cart is empty")

	// ErrUnknownProduct indicates a cart line references a product id that
	// did not resolve against the catalog
	ErrUnknownProduct = fmt.Errorf("cart references an unknown product")
)

// Quote is the frozen pricing result for a rental window. Once stored on a
// booking it is never recomputed.
type Quote struct {
	RentalTotal     float64
	SecurityDeposit float64
	GrandTotal      float64
	NumDays         int
}

// ParseRentalDate parses an ISO date or datetime string from a booking
// request. Datetimes are accepted with or without a Z suffix.
func ParseRentalDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", value)
}

// RentalDays computes the billable day count for a rental window: whole
// days between the UTC-normalized calendar dates, with a minimum of one
// (same-day rentals bill one day).
func RentalDays(start, end time.Time) int {
	start = truncateToUTCDate(start)
	end = truncateToUTCDate(end)

	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

func truncateToUTCDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ComputeQuote prices a cart for a rental window against the resolved
// product map. Pure: no I/O, no side effects.
//
// rentalTotal = sum(discounted_price * quantity) * numDays, with no
// proration or partial-day billing. The deposit is a step function of the
// rental length and applies only when the cart contains a cycle.
func ComputeQuote(items []models.CartItem, products map[string]models.Product, start, end time.Time) (*Quote, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	numDays := RentalDays(start, end)

	dailyTotal := 0.0
	hasCycle := false

	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, item.ProductID)
		}

		dailyTotal += product.DiscountedPrice * float64(item.Quantity)
		if product.IsCycle() {
			hasCycle = true
		}
	}

	rentalTotal := dailyTotal * float64(numDays)

	securityDeposit := 0.0
	if hasCycle {
		if numDays <= shortTermMaxDays {
			securityDeposit = depositShortTerm
		} else {
			securityDeposit = depositLongTerm
		}
	}

	return &Quote{
		RentalTotal:     rentalTotal,
		SecurityDeposit: securityDeposit,
		GrandTotal:      rentalTotal + securityDeposit,
		NumDays:         numDays,
	}, nil
}
