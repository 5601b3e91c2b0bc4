package rest

import (
	"errors"
	"net/http"

	catalogerrors "github.com/abgdnv/missil/internal/errors"
	"github.com/abgdnv/missil/internal/inquiry"
	"github.com/abgdnv/missil/pkg/web"
)

type inquiryResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var form inquiry.ContactForm
	if !web.Decode(w, r, h.logger, &form) {
		return
	}
	in, err := h.inbox.SubmitContact(r.Context(), form)
	if err != nil {
		h.respondInquiryError(w, r, err)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusAccepted, inquiryResponse{ID: in.ID, Message: inquiry.ContactAck})
}

func (h *Handler) SubmitCollaboration(w http.ResponseWriter, r *http.Request) {
	var form inquiry.CollaborationForm
	if !web.Decode(w, r, h.logger, &form) {
		return
	}
	in, err := h.inbox.SubmitCollaboration(r.Context(), form)
	if err != nil {
		h.respondInquiryError(w, r, err)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusAccepted, inquiryResponse{ID: in.ID, Message: inquiry.CollaborationAck})
}

func (h *Handler) respondInquiryError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, catalogerrors.ErrValidation) {
		fields := web.ValidationErrorsMap(err)
		h.logger.WarnContext(r.Context(), "Validation errors occurred", "errors", fields)
		web.RespondJSON(w, h.logger, http.StatusBadRequest, map[string]any{"validation_errors": fields})
		return
	}
	h.logger.ErrorContext(r.Context(), "Error accepting inquiry", "error", err)
	web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to accept message")
}
