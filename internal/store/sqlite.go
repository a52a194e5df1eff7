package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mattbenson/storefront/model"
)

// DB wraps the sqlite handle and exposes one store per collection.
type DB struct {
	db *sql.DB
}

// Open opens the sqlite database at dsn. The pool is capped at a single
// connection; sqlite serializes writers anyway and a single connection
// avoids SQLITE_BUSY under concurrent handlers.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &DB{db: db}, nil
}

// Close closes the underlying handle.
func (d *DB) Close() error { return d.db.Close() }

const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	email         TEXT NOT NULL,
	phone_number  TEXT NOT NULL,
	address       TEXT NOT NULL,
	city          TEXT NOT NULL,
	state         TEXT NOT NULL,
	zip_code      TEXT NOT NULL,
	country       TEXT NOT NULL,
	date_of_birth TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	last_login_at TEXT,
	is_active     INTEGER NOT NULL,
	role          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	name           TEXT NOT NULL,
	description    TEXT NOT NULL,
	sku            TEXT NOT NULL,
	price          TEXT NOT NULL,
	discount_price TEXT NOT NULL,
	category       TEXT NOT NULL,
	brand          TEXT NOT NULL,
	stock_quantity INTEGER NOT NULL,
	rating         REAL NOT NULL,
	review_count   INTEGER NOT NULL,
	image_url      TEXT NOT NULL,
	created_at     TEXT NOT NULL,
	updated_at     TEXT,
	is_available   INTEGER NOT NULL,
	tags           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS seed_marker (
	applied_at TEXT NOT NULL
);
`

// Migrate creates the tables if they do not exist.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("running migration: %w", err)
	}
	return nil
}

// Users returns the users collection.
func (d *DB) Users() UserStore { return userStore{d.db} }

// Products returns the products collection.
func (d *DB) Products() ProductStore { return productStore{d.db} }

// Timestamps are stored as RFC 3339 text. Sub-second precision is kept
// so create/read round-trips compare equal.
func fmtTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func fmtNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return fmtTime(*t)
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ---------------------------------------------------------------------------
// users
// ---------------------------------------------------------------------------

type userStore struct {
	db *sql.DB
}

func (s userStore) Create(ctx context.Context, u model.User) (model.User, error) {
	// Server-assigned fields: any client-supplied id is ignored and
	// createdAt is stamped here.
	u.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (first_name, last_name, email, phone_number, address,
			city, state, zip_code, country, date_of_birth, created_at,
			last_login_at, is_active, role)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.FirstName, u.LastName, u.Email, u.PhoneNumber, u.Address,
		u.City, u.State, u.ZipCode, u.Country, fmtTime(u.DateOfBirth),
		fmtTime(u.CreatedAt), fmtNullTime(u.LastLoginAt), u.IsActive, u.Role)
	if err != nil {
		return model.User{}, fmt.Errorf("inserting user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("reading inserted user id: %w", err)
	}
	u.ID = id
	return u, nil
}

const userColumns = `id, first_name, last_name, email, phone_number, address,
	city, state, zip_code, country, date_of_birth, created_at, last_login_at,
	is_active, role`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	var dob, created string
	var lastLogin sql.NullString
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PhoneNumber,
		&u.Address, &u.City, &u.State, &u.ZipCode, &u.Country, &dob, &created,
		&lastLogin, &u.IsActive, &u.Role)
	if err != nil {
		return model.User{}, err
	}
	if u.DateOfBirth, err = parseTime(dob); err != nil {
		return model.User{}, fmt.Errorf("parsing date_of_birth: %w", err)
	}
	if u.CreatedAt, err = parseTime(created); err != nil {
		return model.User{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if u.LastLoginAt, err = parseNullTime(lastLogin); err != nil {
		return model.User{}, fmt.Errorf("parsing last_login_at: %w", err)
	}
	return u, nil
}

func (s userStore) List(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s userStore) Get(ctx context.Context, id int64) (model.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

func (s userStore) Update(ctx context.Context, id int64, u model.User) error {
	// Full replacement of mutable fields. id and created_at are immutable.
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET first_name = ?, last_name = ?, email = ?,
			phone_number = ?, address = ?, city = ?, state = ?, zip_code = ?,
			country = ?, date_of_birth = ?, last_login_at = ?, is_active = ?,
			role = ?
		WHERE id = ?`,
		u.FirstName, u.LastName, u.Email, u.PhoneNumber, u.Address, u.City,
		u.State, u.ZipCode, u.Country, fmtTime(u.DateOfBirth),
		fmtNullTime(u.LastLoginAt), u.IsActive, u.Role, id)
	if err != nil {
		return fmt.Errorf("updating user %d: %w", id, err)
	}
	return affectedOrNotFound(res)
}

func (s userStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}
	return affectedOrNotFound(res)
}

// ---------------------------------------------------------------------------
// products
// ---------------------------------------------------------------------------

type productStore struct {
	db *sql.DB
}

func (s productStore) Create(ctx context.Context, p model.Product) (model.Product, error) {
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = nil
	tags, err := json.Marshal(tagsOrEmpty(p.Tags))
	if err != nil {
		return model.Product{}, fmt.Errorf("encoding tags: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO products (name, description, sku, price, discount_price,
			category, brand, stock_quantity, rating, review_count, image_url,
			created_at, updated_at, is_available, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.SKU, p.Price.String(), p.DiscountPrice.String(),
		p.Category, p.Brand, p.StockQuantity, p.Rating, p.ReviewCount,
		p.ImageURL, fmtTime(p.CreatedAt), nil, p.IsAvailable, string(tags))
	if err != nil {
		return model.Product{}, fmt.Errorf("inserting product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Product{}, fmt.Errorf("reading inserted product id: %w", err)
	}
	p.ID = id
	p.Tags = tagsOrEmpty(p.Tags)
	return p, nil
}

const productColumns = `id, name, description, sku, price, discount_price,
	category, brand, stock_quantity, rating, review_count, image_url,
	created_at, updated_at, is_available, tags`

func scanProduct(row interface{ Scan(...any) error }) (model.Product, error) {
	var p model.Product
	var price, discount, created, tags string
	var updated sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.SKU, &price, &discount,
		&p.Category, &p.Brand, &p.StockQuantity, &p.Rating, &p.ReviewCount,
		&p.ImageURL, &created, &updated, &p.IsAvailable, &tags)
	if err != nil {
		return model.Product{}, err
	}
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return model.Product{}, fmt.Errorf("parsing price: %w", err)
	}
	if p.DiscountPrice, err = decimal.NewFromString(discount); err != nil {
		return model.Product{}, fmt.Errorf("parsing discount_price: %w", err)
	}
	if p.CreatedAt, err = parseTime(created); err != nil {
		return model.Product{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = parseNullTime(updated); err != nil {
		return model.Product{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	if err = json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		return model.Product{}, fmt.Errorf("decoding tags: %w", err)
	}
	return p, nil
}

func (s productStore) List(ctx context.Context) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products`)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s productStore) Get(ctx context.Context, id int64) (model.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Product{}, ErrNotFound
	}
	return p, err
}

func (s productStore) Update(ctx context.Context, id int64, p model.Product) error {
	tags, err := json.Marshal(tagsOrEmpty(p.Tags))
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE products SET name = ?, description = ?, sku = ?, price = ?,
			discount_price = ?, category = ?, brand = ?, stock_quantity = ?,
			rating = ?, review_count = ?, image_url = ?, updated_at = ?,
			is_available = ?, tags = ?
		WHERE id = ?`,
		p.Name, p.Description, p.SKU, p.Price.String(), p.DiscountPrice.String(),
		p.Category, p.Brand, p.StockQuantity, p.Rating, p.ReviewCount,
		p.ImageURL, fmtTime(time.Now()), p.IsAvailable, string(tags), id)
	if err != nil {
		return fmt.Errorf("updating product %d: %w", id, err)
	}
	return affectedOrNotFound(res)
}

func (s productStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product %d: %w", id, err)
	}
	return affectedOrNotFound(res)
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
