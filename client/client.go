// Package client is the stable service façade.
//
// The bindings in gen/sdk are regenerated whenever the contract
// document changes, and their method and field names follow the
// document mechanically (GetApiUsersById, ImageUrl). This package pins
// a hand-named API on top of them: consumers depend on Users().Get and
// model.Product, and a regeneration only ever touches the adapter
// bodies here.
package client

import (
	"context"

	"github.com/mattbenson/storefront/gen/sdk"
	"github.com/mattbenson/storefront/model"
)

// UserAPI is the façade over the users collection.
type UserAPI interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, u model.User) (*model.User, error)
	Update(ctx context.Context, id int64, u model.User) error
	Delete(ctx context.Context, id int64) error
}

// ProductAPI is the façade over the products collection.
type ProductAPI interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, p model.Product) (*model.Product, error)
	Update(ctx context.Context, id int64, p model.Product) error
	Delete(ctx context.Context, id int64) error
}

// Client bundles the per-collection façades.
type Client struct {
	Users    UserAPI
	Products ProductAPI
}

// New returns a Client talking to the service at baseURL.
func New(baseURL string) *Client {
	api := sdk.New(baseURL)
	return &Client{
		Users:    userAPI{api: api},
		Products: productAPI{api: api},
	}
}
