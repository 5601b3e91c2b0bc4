package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/abgdnv/missil/internal/cms"
	catalogerrors "github.com/abgdnv/missil/internal/errors"
	"github.com/abgdnv/missil/pkg/web"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListAdminProducts(w http.ResponseWriter, r *http.Request) {
	list := h.store.List()
	h.logger.DebugContext(r.Context(), "Successfully retrieved CMS products", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

func (h *Handler) GetAdminProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	found, err := h.store.Get(id)
	if err != nil {
		h.respondStoreError(w, r, id, "retrieve", err)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

// CreateAdminProduct validates a draft and stores it as a new CMS product.
func (h *Handler) CreateAdminProduct(w http.ResponseWriter, r *http.Request) {
	var draft cms.Draft
	if !web.Decode(w, r, h.logger, &draft) {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to create CMS product", "name", draft.Name)

	created, err := h.store.Add(r.Context(), draft)
	if err != nil {
		h.respondStoreError(w, r, "", "create", err)
		return
	}
	h.logger.InfoContext(r.Context(), "CMS product created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

func (h *Handler) UpdateAdminProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var draft cms.Draft
	if !web.Decode(w, r, h.logger, &draft) {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to update CMS product", "ID", id)

	updated, err := h.store.Update(r.Context(), id, draft)
	if err != nil {
		h.respondStoreError(w, r, id, "update", err)
		return
	}
	h.logger.InfoContext(r.Context(), "CMS product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

func (h *Handler) DeleteAdminProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.store.Remove(r.Context(), id) {
		h.logger.WarnContext(r.Context(), "CMS product not found for deletion", "ID", id)
		web.RespondError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
		return
	}
	h.logger.InfoContext(r.Context(), "CMS product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ToggleBestseller(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	updated, err := h.store.ToggleBestseller(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, id, "toggle bestseller of", err)
		return
	}
	h.logger.InfoContext(r.Context(), "CMS product bestseller flag toggled", "ID", id, "isBestseller", updated.IsBestseller)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

type moveImageRequest struct {
	From *int `json:"from" validate:"required,gte=0"`
	To   *int `json:"to"   validate:"required,gte=0"`
}

// MoveImage moves one image of a stored CMS product to a new position.
func (h *Handler) MoveImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req moveImageRequest
	if !web.DecodeAndValidate(w, r, h.logger, h.validate, &req) {
		return
	}
	updated, err := h.store.ReorderImages(r.Context(), id, *req.From, *req.To)
	if err != nil {
		h.respondStoreError(w, r, id, "move image of", err)
		return
	}
	h.logger.InfoContext(r.Context(), "CMS product image moved", "ID", id, "from", *req.From, "to", *req.To)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

type bestsellersResponse struct {
	Count    int           `json:"count"`
	Products []cms.Product `json:"products"`
}

func (h *Handler) Bestsellers(w http.ResponseWriter, _ *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, bestsellersResponse{
		Count:    h.store.BestsellerCount(),
		Products: h.store.Bestsellers(),
	})
}

func (h *Handler) Categories(w http.ResponseWriter, _ *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, h.store.DistinctCategories())
}

func (h *Handler) Sizes(w http.ResponseWriter, _ *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, cms.AvailableSizes())
}

func (h *Handler) respondStoreError(w http.ResponseWriter, r *http.Request, id, action string, err error) {
	var vErr *cms.ValidationError
	switch {
	case errors.As(err, &vErr):
		fields := web.ValidationErrorsMap(err)
		h.logger.WarnContext(r.Context(), "Validation errors occurred", "class", vErr.Class, "errors", fields)
		web.RespondJSON(w, h.logger, http.StatusBadRequest, map[string]any{
			"error":             vErr.Error(),
			"validation_errors": fields,
		})
	case errors.Is(err, catalogerrors.ErrProductNotFound):
		h.logger.WarnContext(r.Context(), "CMS product not found", "ID", id)
		web.RespondError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
	case errors.Is(err, catalogerrors.ErrIndexOutOfRange):
		h.logger.WarnContext(r.Context(), "Image index out of range", "ID", id, "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Error handling CMS product", "ID", id, "action", action, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, fmt.Sprintf("Failed to %s product", action))
	}
}
