package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/abgdnv/missil/internal/catalog"
	catalogerrors "github.com/abgdnv/missil/internal/errors"
	"github.com/abgdnv/missil/pkg/web"
	"github.com/go-chi/chi/v5"
)

// QueryProducts filters, searches and sorts the shop catalog.
func (h *Handler) QueryProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sortBy, err := catalog.ParseSortOrder(q.Get("sort"))
	if err != nil {
		h.logger.WarnContext(r.Context(), "Invalid sort order", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	price, ok := h.priceMatcher(w, r)
	if !ok {
		return
	}
	criteria := catalog.Criteria{
		Category: q.Get("category"),
		Color:    q.Get("color"),
		Size:     q.Get("size"),
		Search:   q.Get("q"),
		Price:    price,
		SortBy:   sortBy,
	}
	h.logger.DebugContext(r.Context(), "Received request to query products", "criteria", criteria)

	list := h.catalog.Query(criteria)
	h.logger.DebugContext(r.Context(), "Successfully queried products", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

func (h *Handler) priceMatcher(w http.ResponseWriter, r *http.Request) (catalog.PriceMatcher, bool) {
	if h.shop.PriceFilter == PriceFilterBucket {
		bucket, err := h.catalog.ParsePriceBucket(r.URL.Query().Get("price"))
		if err != nil {
			h.logger.WarnContext(r.Context(), "Invalid price bucket", "error", err)
			web.RespondError(w, h.logger, http.StatusBadRequest, err.Error())
			return nil, false
		}
		return bucket, true
	}

	minPrice, ok := web.ParseOptionalGte(r, w, h.logger, "minPrice", 0, h.shop.DefaultRange.Min)
	if !ok {
		return nil, false
	}
	maxPrice, ok := web.ParseOptionalGte(r, w, h.logger, "maxPrice", 0, h.shop.DefaultRange.Max)
	if !ok {
		return nil, false
	}
	if minPrice > maxPrice {
		web.RespondError(w, h.logger, http.StatusBadRequest,
			fmt.Sprintf("Invalid price range: minPrice %d is greater than maxPrice %d", minPrice, maxPrice))
		return nil, false
	}
	return catalog.PriceRange{Min: minPrice, Max: maxPrice}, true
}

// FindProduct retrieves a single catalog product by its ID.
func (h *Handler) FindProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.logger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)

	found, err := h.catalog.FindByID(id)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrProductNotFound) {
			h.logger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
			return
		}
		h.logger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with ID %s", id))
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

type filterOptionsResponse struct {
	catalog.Options
	PriceFilter PriceFilter        `json:"priceFilter"`
	PriceRange  catalog.PriceRange `json:"priceRange"`
}

// FilterOptions lists the selectable values of every shop filter.
func (h *Handler) FilterOptions(w http.ResponseWriter, _ *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, filterOptionsResponse{
		Options:     h.catalog.FilterOptions(),
		PriceFilter: h.shop.PriceFilter,
		PriceRange:  h.shop.DefaultRange,
	})
}
