// Package store persists the entity collections in sqlite.
package store

import (
	"context"
	"errors"

	"github.com/mattbenson/storefront/model"
)

// ErrNotFound is returned by Get, Update and Delete when no row has the
// requested id.
var ErrNotFound = errors.New("not found")

// UserStore is the CRUD contract for the users collection.
type UserStore interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id int64) (model.User, error)
	Update(ctx context.Context, id int64, u model.User) error
	Delete(ctx context.Context, id int64) error
}

// ProductStore is the CRUD contract for the products collection.
type ProductStore interface {
	Create(ctx context.Context, p model.Product) (model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id int64) (model.Product, error)
	Update(ctx context.Context, id int64, p model.Product) error
	Delete(ctx context.Context, id int64) error
}
