// Package model holds the canonical Go shapes of the persisted entities.
//
// These structs mirror the declarations in schema/*.cue. They are the
// shapes the HTTP surface serializes and the shapes the service façade
// in client/ accepts and returns; the generated wire structs in gen/sdk
// never escape past the façade.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The wire contract declares prices as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Role values the contract advertises. Stored as free text — the store
// does not reject other values.
const (
	RoleUser    = "User"
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
)

// User is a registered account holder.
type User struct {
	ID          int64      `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phoneNumber"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	State       string     `json:"state"`
	ZipCode     string     `json:"zipCode"`
	Country     string     `json:"country"`
	DateOfBirth time.Time  `json:"dateOfBirth"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	IsActive    bool       `json:"isActive"`
	Role        string     `json:"role"`
}

// Product is a catalog item.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price"`
	DiscountPrice decimal.Decimal `json:"discountPrice"`
	Category      string          `json:"category"`
	Brand         string          `json:"brand"`
	StockQuantity int             `json:"stockQuantity"`
	Rating        float64         `json:"rating"`
	ReviewCount   int             `json:"reviewCount"`
	ImageURL      string          `json:"imageUrl"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     *time.Time      `json:"updatedAt,omitempty"`
	IsAvailable   bool            `json:"isAvailable"`
	Tags          []string        `json:"tags"`
}
