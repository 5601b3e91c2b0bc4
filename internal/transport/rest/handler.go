// Package rest exposes the shop, the admin CMS and the inquiry forms over HTTP.
package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/abgdnv/missil/internal/catalog"
	"github.com/abgdnv/missil/internal/cms"
	"github.com/abgdnv/missil/internal/inquiry"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Catalog is the read side of the shop.
type Catalog interface {
	Query(c catalog.Criteria) []catalog.Product
	FindByID(id string) (catalog.Product, error)
	FilterOptions() catalog.Options
	ParsePriceBucket(name string) (catalog.PriceBucket, error)
}

// AdminStore is the CMS product collection.
type AdminStore interface {
	Add(ctx context.Context, d cms.Draft) (cms.Product, error)
	Update(ctx context.Context, id string, d cms.Draft) (cms.Product, error)
	Remove(ctx context.Context, id string) bool
	ToggleBestseller(ctx context.Context, id string) (cms.Product, error)
	ReorderImages(ctx context.Context, id string, from, to int) (cms.Product, error)
	List() []cms.Product
	Get(id string) (cms.Product, error)
	Bestsellers() []cms.Product
	BestsellerCount() int
	DistinctCategories() []string
}

// Inbox accepts form submissions.
type Inbox interface {
	SubmitContact(ctx context.Context, f inquiry.ContactForm) (inquiry.Inquiry, error)
	SubmitCollaboration(ctx context.Context, f inquiry.CollaborationForm) (inquiry.Inquiry, error)
}

// PriceFilter selects how the shop reads the price filter from a request.
type PriceFilter string

const (
	PriceFilterRange  PriceFilter = "range"
	PriceFilterBucket PriceFilter = "bucket"
)

// ShopOptions configures the shop query endpoint.
type ShopOptions struct {
	PriceFilter  PriceFilter
	DefaultRange catalog.PriceRange
}

type Handler struct {
	catalog  Catalog
	store    AdminStore
	inbox    Inbox
	shop     ShopOptions
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(c Catalog, store AdminStore, inbox Inbox, shop ShopOptions, logger *slog.Logger) *Handler {
	if shop.PriceFilter == "" {
		shop.PriceFilter = PriceFilterRange
	}
	return &Handler{
		catalog:  c,
		store:    store,
		inbox:    inbox,
		shop:     shop,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes of the catalog service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", h.QueryProducts)
		r.Get("/products/{id}", h.FindProduct)
		r.Get("/filters", h.FilterOptions)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/products", h.ListAdminProducts)
			r.Post("/products", h.CreateAdminProduct)
			r.Route("/products/{id}", func(r chi.Router) {
				r.Get("/", h.GetAdminProduct)
				r.Put("/", h.UpdateAdminProduct)
				r.Delete("/", h.DeleteAdminProduct)
				r.Post("/bestseller", h.ToggleBestseller)
				r.Post("/images/move", h.MoveImage)
			})
			r.Get("/bestsellers", h.Bestsellers)
			r.Get("/categories", h.Categories)
			r.Get("/sizes", h.Sizes)
		})

		r.Post("/contact", h.SubmitContact)
		r.Post("/collaboration", h.SubmitCollaboration)
	})

	r.Get("/healthz", h.HealthCheck)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
