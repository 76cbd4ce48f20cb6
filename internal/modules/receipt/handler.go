package receipt

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adiwijaya/warungpos-backend/internal/modules/sales"
)

// Handler exposes receipt HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/api/v1/receipts/{transaction_id}", h.getReceipt)
}

func (h *Handler) getReceipt(w http.ResponseWriter, r *http.Request) {
	rc, err := h.service.BuildReceipt(r.Context(), chi.URLParam(r, "transaction_id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, sales.ErrTransactionNotFound) {
			status = http.StatusNotFound
		}
		respond(w, status, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, rc)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
