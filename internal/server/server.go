// Package server assembles all HTTP handlers and starts the server.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mattbenson/storefront/gen/openapi"
	"github.com/mattbenson/storefront/internal/handler"
	"github.com/mattbenson/storefront/internal/store"
)

// Config holds server configuration.
type Config struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DB           *store.DB
}

// Router builds the full route table. Split out from Run so tests can
// mount it on an httptest server.
func Router(db *store.DB) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// The published contract document. Consumers regenerate their
	// bindings from this endpoint.
	r.Get("/swagger/v1/swagger.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(openapi.Document)
	})

	uh := handler.NewUserHandler(db.Users())
	r.Get("/api/users", uh.ListUsers)
	r.Post("/api/users", uh.CreateUser)
	r.Get("/api/users/{id}", uh.GetUser)
	r.Put("/api/users/{id}", uh.UpdateUser)
	r.Delete("/api/users/{id}", uh.DeleteUser)

	ph := handler.NewProductHandler(db.Products())
	r.Get("/api/products", ph.ListProducts)
	r.Post("/api/products", ph.CreateProduct)
	r.Get("/api/products/{id}", ph.GetProduct)
	r.Put("/api/products/{id}", ph.UpdateProduct)
	r.Delete("/api/products/{id}", ph.DeleteProduct)

	return handler.Recovery(handler.Logging(r))
}

// Run starts the HTTP server with all routes registered and shuts it
// down when ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("starting server on %s", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      Router(cfg.DB),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
