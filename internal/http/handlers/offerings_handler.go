package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Waynenyarky/capstone-booking/internal/booking"
	"github.com/Waynenyarky/capstone-booking/internal/directory"
	"github.com/Waynenyarky/capstone-booking/internal/domain"
	"github.com/Waynenyarky/capstone-booking/internal/http/response"
	"github.com/Waynenyarky/capstone-booking/pkg/auth"
	"github.com/Waynenyarky/capstone-booking/pkg/logger"
)

type OfferingsHandler struct {
	Directory *directory.Service
	Booking   *booking.Service
	JWTSecret string
}

func NewOfferingsHandler(dir *directory.Service, bkg *booking.Service, jwtSecret string) *OfferingsHandler {
	return &OfferingsHandler{Directory: dir, Booking: bkg, JWTSecret: jwtSecret}
}

func (h *OfferingsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/public", h.listPublic)
	r.With(RequireRole(h.JWTSecret, auth.RoleProvider)).Patch("/{id}", h.update)
	return r
}

func (h *OfferingsHandler) listPublic(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.Directory.List(r.Context(), directory.Query{
		City:     q.Get("city"),
		Province: q.Get("province"),
		Category: q.Get("category"),
		Search:   q.Get("search"),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "directory list failed", "error", err)
		response.InternalError(w, "error listing offerings")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{
		"offerings": rows,
		"count":     len(rows),
	})
}

func (h *OfferingsHandler) update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "missing identity")
		return
	}
	var patch domain.OfferingPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	updated, err := h.Booking.UpdateOffering(r.Context(), identity, chi.URLParam(r, "id"), patch)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, updated)
}
