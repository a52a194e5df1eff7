package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattbenson/storefront/client"
	"github.com/mattbenson/storefront/internal/server"
	"github.com/mattbenson/storefront/internal/store"
	"github.com/mattbenson/storefront/model"

	_ "modernc.org/sqlite"
)

func newFacade(t *testing.T) *client.Client {
	t.Helper()
	db, err := store.Open("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, store.EnsureSeeded(ctx, db))

	srv := httptest.NewServer(server.Router(db))
	t.Cleanup(srv.Close)
	return client.New(srv.URL)
}

func TestUsersList(t *testing.T) {
	c := newFacade(t)
	users, err := c.Users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	// List order is unspecified; index by id.
	byID := map[int64]model.User{}
	for _, u := range users {
		byID[u.ID] = u
	}
	john := byID[1]
	assert.Equal(t, "John", john.FirstName)
	assert.NotNil(t, john.LastLoginAt)
}

func TestUsersGet_NotFound(t *testing.T) {
	c := newFacade(t)
	_, err := c.Users.Get(context.Background(), 999)
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestUsersCreate_ValidationError(t *testing.T) {
	c := newFacade(t)
	_, err := c.Users.Create(context.Background(), model.User{FirstName: "Ann"})
	var verr *client.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "VALIDATION_ERROR", verr.Code)
	assert.Contains(t, verr.Message, "lastName")
}

func TestUsersLifecycle(t *testing.T) {
	c := newFacade(t)
	ctx := context.Background()

	u := model.User{
		FirstName:   "Ann",
		LastName:    "Lee",
		Email:       "ann.lee@example.com",
		PhoneNumber: "+1-555-0199",
		Address:     "9 Elm St",
		City:        "Austin",
		State:       "TX",
		ZipCode:     "73301",
		Country:     "USA",
		DateOfBirth: time.Date(1988, 3, 1, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
		Role:        model.RoleUser,
	}

	created, err := c.Users.Create(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	created.City = "Dallas"
	require.NoError(t, c.Users.Update(ctx, created.ID, *created))

	fetched, err := c.Users.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dallas", fetched.City)
	// Update preserves the original creation timestamp.
	assert.True(t, fetched.CreatedAt.Equal(created.CreatedAt))

	require.NoError(t, c.Users.Delete(ctx, created.ID))
	_, err = c.Users.Get(ctx, created.ID)
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestProductsRoundTrip(t *testing.T) {
	c := newFacade(t)
	ctx := context.Background()

	p := model.Product{
		Name:          "Desk Lamp",
		Description:   "LED desk lamp with adjustable arm",
		SKU:           "DL-01",
		Price:         decimal.NewFromFloat(19.99),
		DiscountPrice: decimal.NewFromFloat(15.99),
		Category:      "Lighting",
		Brand:         "BrightCo",
		StockQuantity: 12,
		Rating:        4.1,
		ReviewCount:   7,
		ImageURL:      "https://example.com/images/lamp.jpg",
		IsAvailable:   true,
		Tags:          []string{"lamp", "led"},
	}

	created, err := c.Products.Create(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)
	assert.True(t, created.Price.Equal(decimal.NewFromFloat(19.99)), "got %s", created.Price)
	assert.Equal(t, []string{"lamp", "led"}, created.Tags)

	fetched, err := c.Products.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "DL-01", fetched.SKU)
	assert.True(t, fetched.DiscountPrice.Equal(decimal.NewFromFloat(15.99)))
}

func TestProductsUpdate_StampsUpdatedAt(t *testing.T) {
	c := newFacade(t)
	ctx := context.Background()

	before, err := c.Products.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, before.UpdatedAt)

	changed := *before
	changed.StockQuantity = 99
	require.NoError(t, c.Products.Update(ctx, 1, changed))

	after, err := c.Products.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 99, after.StockQuantity)
	require.NotNil(t, after.UpdatedAt)
	assert.True(t, after.UpdatedAt.After(*before.UpdatedAt))
}

func TestProductsDelete_NotFound(t *testing.T) {
	c := newFacade(t)
	err := c.Products.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "try again later", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := client.New(srv.URL)
	_, err := c.Users.List(context.Background())
	var terr *client.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusServiceUnavailable, terr.StatusCode)
}

func TestTransportError_DialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listens on this address any more

	c := client.New(srv.URL)
	_, err := c.Users.List(context.Background())
	var terr *client.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Zero(t, terr.StatusCode)
	assert.NotNil(t, terr.Err)
}

func TestTransportError_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("{not json"))
	}))
	t.Cleanup(srv.Close)

	c := client.New(srv.URL)
	_, err := c.Users.List(context.Background())
	var terr *client.TransportError
	require.ErrorAs(t, err, &terr)
}

func TestContextCancellationPassesThrough(t *testing.T) {
	c := newFacade(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Users.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	var terr *client.TransportError
	assert.False(t, errors.As(err, &terr))
}
