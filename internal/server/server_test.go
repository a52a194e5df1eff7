package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattbenson/storefront/gen/openapi"
	"github.com/mattbenson/storefront/internal/store"
	"github.com/mattbenson/storefront/model"

	_ "modernc.org/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := store.Open("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, store.EnsureSeeded(ctx, db))

	srv := httptest.NewServer(Router(db))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func postJSON(t *testing.T, url string, in, out any) *http.Response {
	t.Helper()
	body, err := json.Marshal(in)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func doJSON(t *testing.T, method, url string, in any) *http.Response {
	t.Helper()
	var reqBody *bytes.Reader
	if in != nil {
		body, err := json.Marshal(in)
		require.NoError(t, err)
		reqBody = bytes.NewReader(body)
	} else {
		reqBody = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp := getJSON(t, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSwaggerDocument(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/swagger/v1/swagger.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	// Served bytes are the embedded document, byte for byte.
	assert.Equal(t, openapi.Document, buf.Bytes())
}

func TestListUsers_Seeded(t *testing.T) {
	srv := newTestServer(t)
	var users []model.User
	resp := getJSON(t, srv.URL+"/api/users", &users)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, users, 2)

	// List order is unspecified; index by id.
	byID := map[int64]model.User{}
	for _, u := range users {
		byID[u.ID] = u
	}
	assert.Equal(t, "John", byID[1].FirstName)
	assert.Equal(t, model.RoleAdmin, byID[1].Role)
	assert.Equal(t, "Jane", byID[2].FirstName)
}

func TestGetUser_NotFound(t *testing.T) {
	srv := newTestServer(t)
	var body map[string]string
	resp := getJSON(t, srv.URL+"/api/users/999", &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestGetUser_MalformedID(t *testing.T) {
	srv := newTestServer(t)
	var body map[string]string
	resp := getJSON(t, srv.URL+"/api/users/abc", &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", body["code"])
}

func TestCreateUser_Validation(t *testing.T) {
	srv := newTestServer(t)
	u := model.User{FirstName: "Ann"} // missing everything else
	var body map[string]string
	resp := postJSON(t, srv.URL+"/api/users", u, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Contains(t, body["error"], "lastName")
}

func TestUserLifecycle(t *testing.T) {
	srv := newTestServer(t)

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
		DateOfBirth: mustParse(t, "1988-03-01T00:00:00Z"),
		IsActive:    true,
		Role:        model.RoleUser,
	}

	var created model.User
	resp := postJSON(t, srv.URL+"/api/users", u, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(3), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	created.City = "Dallas"
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/users/3", created)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var fetched model.User
	resp = getJSON(t, srv.URL+"/api/users/3", &fetched)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Dallas", fetched.City)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/users/3", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/users/3", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateUser_NotFound(t *testing.T) {
	srv := newTestServer(t)
	var users []model.User
	getJSON(t, srv.URL+"/api/users", &users)
	require.NotEmpty(t, users)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/users/999", users[0])
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListProducts_Seeded(t *testing.T) {
	srv := newTestServer(t)
	var products []model.Product
	resp := getJSON(t, srv.URL+"/api/products", &products)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, products, 3)

	byID := map[int64]model.Product{}
	for _, p := range products {
		byID[p.ID] = p
	}
	headphones := byID[1]
	assert.Equal(t, "Wireless Headphones", headphones.Name)
	assert.Equal(t, "WH-1000XM4", headphones.SKU)
	assert.True(t, headphones.Price.Equal(decimalFromString(t, "349.99")))
	assert.Equal(t, []string{"wireless", "bluetooth", "noise-cancelling", "premium"}, headphones.Tags)
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	srv := newTestServer(t)
	var products []model.Product
	getJSON(t, srv.URL+"/api/products", &products)
	p := products[0]
	p.Price = decimalFromString(t, "-1")

	var body map[string]string
	resp := postJSON(t, srv.URL+"/api/products", p, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Contains(t, body["error"], "price")
}

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestDeleteProduct_DoesNotReseed(t *testing.T) {
	srv := newTestServer(t)
	for _, id := range []string{"1", "2", "3"} {
		resp := doJSON(t, http.MethodDelete, srv.URL+"/api/products/"+id, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	}
	var products []model.Product
	resp := getJSON(t, srv.URL+"/api/products", &products)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, products)
}
