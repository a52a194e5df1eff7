package model

import (
	"fmt"
	"strings"
)

// ValidationError reports a write payload that violates the declared
// entity shape.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func requireText(field, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "required"}
	}
	return nil
}

// Validate checks the required fields of a user write payload.
// Role is intentionally not checked against the known role values.
func (u *User) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"firstName", u.FirstName},
		{"lastName", u.LastName},
		{"email", u.Email},
		{"phoneNumber", u.PhoneNumber},
		{"address", u.Address},
		{"city", u.City},
		{"state", u.State},
		{"zipCode", u.ZipCode},
		{"country", u.Country},
		{"role", u.Role},
	} {
		if err := requireText(f.name, f.value); err != nil {
			return err
		}
	}
	if u.DateOfBirth.IsZero() {
		return &ValidationError{Field: "dateOfBirth", Reason: "required"}
	}
	return nil
}

// Validate checks the required fields of a product write payload.
// discountPrice is not compared against price and rating is not
// range-checked; both match the published contract as-is.
func (p *Product) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"name", p.Name},
		{"description", p.Description},
		{"sku", p.SKU},
		{"category", p.Category},
		{"brand", p.Brand},
		{"imageUrl", p.ImageURL},
	} {
		if err := requireText(f.name, f.value); err != nil {
			return err
		}
	}
	if p.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must be non-negative"}
	}
	if p.DiscountPrice.IsNegative() {
		return &ValidationError{Field: "discountPrice", Reason: "must be non-negative"}
	}
	if p.StockQuantity < 0 {
		return &ValidationError{Field: "stockQuantity", Reason: "must be non-negative"}
	}
	if p.ReviewCount < 0 {
		return &ValidationError{Field: "reviewCount", Reason: "must be non-negative"}
	}
	return nil
}
