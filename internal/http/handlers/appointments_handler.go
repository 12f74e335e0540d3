package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Waynenyarky/capstone-booking/internal/booking"
	"github.com/Waynenyarky/capstone-booking/internal/http/response"
	"github.com/Waynenyarky/capstone-booking/pkg/auth"
)

type AppointmentsHandler struct {
	Booking   *booking.Service
	JWTSecret string
}

func NewAppointmentsHandler(bkg *booking.Service, jwtSecret string) *AppointmentsHandler {
	return &AppointmentsHandler{Booking: bkg, JWTSecret: jwtSecret}
}

func (h *AppointmentsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(RequireRole(h.JWTSecret, auth.RoleCustomer)).Post("/", h.create)
	r.With(RequireRole(h.JWTSecret, auth.RoleCustomer)).Get("/customer", h.listCustomer)
	r.With(RequireRole(h.JWTSecret, auth.RoleProvider)).Get("/provider", h.listProvider)
	r.With(RequireRole(h.JWTSecret, auth.RoleProvider)).Patch("/{id}/review", h.review)
	return r
}

func (h *AppointmentsHandler) create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "missing identity")
		return
	}
	var req booking.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	appt, err := h.Booking.CreateAppointment(r.Context(), identity, req)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, appt)
}

func (h *AppointmentsHandler) listCustomer(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "missing identity")
		return
	}
	views, err := h.Booking.ListCustomerAppointments(r.Context(), identity, r.URL.Query().Get("status"))
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{
		"appointments": views,
		"count":        len(views),
	})
}

func (h *AppointmentsHandler) listProvider(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "missing identity")
		return
	}
	views, err := h.Booking.ListProviderAppointments(r.Context(), identity, r.URL.Query().Get("status"))
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{
		"appointments": views,
		"count":        len(views),
	})
}

func (h *AppointmentsHandler) review(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "missing identity")
		return
	}
	var req booking.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	appt, err := h.Booking.ReviewAppointment(r.Context(), identity, chi.URLParam(r, "id"), req)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, appt)
}
