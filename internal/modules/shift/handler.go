package shift

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes shift HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/shifts", func(r chi.Router) {
		r.Post("/open", h.openShift)                       // POST /api/v1/shifts/open
		r.Post("/{id}/close", h.closeShift)                // POST /api/v1/shifts/{id}/close
		r.Get("/active", h.getActiveShift)                 // GET  /api/v1/shifts/active?cashier_id=
		r.Get("/{id}", h.getShift)                         // GET  /api/v1/shifts/{id}
		r.Get("/cashier/{cashier_id}", h.listShifts)       // GET  /api/v1/shifts/cashier/{id}
	})
}

func (h *Handler) openShift(w http.ResponseWriter, r *http.Request) {
	var req OpenShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sh, err := h.service.OpenShift(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, sh)
}

func (h *Handler) closeShift(w http.ResponseWriter, r *http.Request) {
	var req CloseShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sh, err := h.service.CloseShift(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sh)
}

func (h *Handler) getActiveShift(w http.ResponseWriter, r *http.Request) {
	cashierID := r.URL.Query().Get("cashier_id")
	if cashierID == "" {
		respond(w, http.StatusBadRequest, map[string]string{"error": "cashier_id is required"})
		return
	}
	sh, err := h.service.GetActiveShift(r.Context(), cashierID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if sh == nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "no active shift"})
		return
	}
	respond(w, http.StatusOK, sh)
}

func (h *Handler) getShift(w http.ResponseWriter, r *http.Request) {
	sh, err := h.service.GetShift(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sh)
}

func (h *Handler) listShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.service.ListShifts(r.Context(), chi.URLParam(r, "cashier_id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, shifts)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrShiftNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrShiftAlreadyOpen), errors.Is(err, ErrShiftNotOpen):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
