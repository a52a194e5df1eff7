// Seed applies the fixed initial dataset to a freshly created database.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// EnsureSeeded inserts the fixture rows (2 users, 3 products) exactly
// once per database. A marker row records that seeding ran, so the
// fixture is never reapplied — not even if every seeded row is later
// deleted.
func EnsureSeeded(ctx context.Context, d *DB) error {
	var applied int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seed_marker`).Scan(&applied); err != nil {
		return fmt.Errorf("checking seed marker: %w", err)
	}
	if applied > 0 {
		return nil
	}

	now := time.Now().UTC()
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	users := []struct {
		id                                 int64
		first, last, email, phone          string
		address, city, state, zip, country string
		dob                                time.Time
		createdDaysAgo, lastLoginHoursAgo  int
		role                               string
	}{
		{1, "John", "Doe", "john.doe@example.com", "+1-555-0100",
			"123 Main St", "New York", "NY", "10001", "USA",
			time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC), 100, 2, "Admin"},
		{2, "Jane", "Smith", "jane.smith@example.com", "+1-555-0101",
			"456 Oak Ave", "Los Angeles", "CA", "90001", "USA",
			time.Date(1992, 8, 22, 0, 0, 0, 0, time.UTC), 50, 5, "User"},
	}
	for _, u := range users {
		lastLogin := now.Add(-time.Duration(u.lastLoginHoursAgo) * time.Hour)
		_, err := tx.ExecContext(ctx, `
			INSERT INTO users (id, first_name, last_name, email, phone_number,
				address, city, state, zip_code, country, date_of_birth,
				created_at, last_login_at, is_active, role)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			u.id, u.first, u.last, u.email, u.phone, u.address, u.city,
			u.state, u.zip, u.country, fmtTime(u.dob),
			fmtTime(now.AddDate(0, 0, -u.createdDaysAgo)), fmtTime(lastLogin),
			true, u.role)
		if err != nil {
			return fmt.Errorf("seeding user %d: %w", u.id, err)
		}
	}

	products := []struct {
		id                             int64
		name, description, sku         string
		price, discount                string
		category, brand                string
		stock                          int
		rating                         float64
		reviews                        int
		imageURL                       string
		createdDaysAgo, updatedDaysAgo int
		tags                           []string
	}{
		{1, "Wireless Headphones", "High-quality wireless headphones with noise cancellation",
			"WH-1000XM4", "349.99", "299.99", "Electronics", "TechAudio",
			150, 4.5, 1250, "https://example.com/images/headphones.jpg",
			60, 10, []string{"wireless", "bluetooth", "noise-cancelling", "premium"}},
		{2, "Mechanical Keyboard", "RGB mechanical gaming keyboard with Cherry MX switches",
			"KB-RGB-2024", "129.99", "99.99", "Computer Accessories", "GameTech",
			85, 4.7, 876, "https://example.com/images/keyboard.jpg",
			45, 3, []string{"mechanical", "rgb", "gaming", "cherry-mx"}},
		{3, "4K Monitor", "27-inch 4K UHD monitor with HDR support",
			"MON-4K-27", "599.99", "549.99", "Monitors", "DisplayPro",
			42, 4.6, 532, "https://example.com/images/monitor.jpg",
			30, 1, []string{"4k", "hdr", "gaming", "professional"}},
	}
	for _, p := range products {
		tags, err := json.Marshal(p.tags)
		if err != nil {
			return fmt.Errorf("encoding seed tags: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO products (id, name, description, sku, price,
				discount_price, category, brand, stock_quantity, rating,
				review_count, image_url, created_at, updated_at, is_available,
				tags)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.id, p.name, p.description, p.sku, p.price, p.discount,
			p.category, p.brand, p.stock, p.rating, p.reviews, p.imageURL,
			fmtTime(now.AddDate(0, 0, -p.createdDaysAgo)),
			fmtTime(now.AddDate(0, 0, -p.updatedDaysAgo)), true, string(tags))
		if err != nil {
			return fmt.Errorf("seeding product %d: %w", p.id, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO seed_marker (applied_at) VALUES (?)`, fmtTime(now)); err != nil {
		return fmt.Errorf("recording seed marker: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}
	log.Printf("seeded %d users and %d products", len(users), len(products))
	return nil
}
