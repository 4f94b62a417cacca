package models

import "time"

// ProductCategory distinguishes rentable cycles from add-on accessories.
// Only cycles attract a security deposit.
type ProductCategory string

const (
	CategoryCycle     ProductCategory = "cycle"
	CategoryAccessory ProductCategory = "accessory"
)

// Product represents a rentable item in the catalog
type Product struct {
	ID              string          `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	NameHi          string          `json:"name_hi" db:"name_hi"`
	Description     string          `json:"description" db:"description"`
	DescriptionHi   string          `json:"description_hi" db:"description_hi"`
	Price           float64         `json:"price" db:"price"`
	DiscountedPrice float64         `json:"discounted_price" db:"discounted_price"`
	SecurityDeposit float64         `json:"security_deposit" db:"security_deposit"`
	Category        ProductCategory `json:"category" db:"category"`
	ImageURL        string          `json:"image_url" db:"image_url"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// IsCycle reports whether the product is a cycle (deposit-bearing category)
func (p *Product) IsCycle() bool {
	return p.Category == CategoryCycle
}
