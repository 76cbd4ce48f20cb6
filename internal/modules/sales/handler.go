package sales

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Handler exposes settlement HTTP endpoints. requireAdmin wraps the
// refund route; everything else is open to any authenticated cashier.
type Handler struct {
	service      Service
	requireAdmin func(http.Handler) http.Handler
}

func NewHandler(service Service, requireAdmin func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, requireAdmin: requireAdmin}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/sales", func(r chi.Router) {
		r.Post("/settle", h.settle)                                // POST /api/v1/sales/settle
		r.Get("/transactions/{id}", h.getTransaction)              // GET  /api/v1/sales/transactions/{id}
		r.Get("/transactions/invoice/{invoice}", h.getByInvoice)   // GET  /api/v1/sales/transactions/invoice/{n}
		r.Get("/transactions/shift/{shift_id}", h.listByShift)     // GET  /api/v1/sales/transactions/shift/{id}
		r.Get("/transactions", h.listRange)                        // GET  /api/v1/sales/transactions?from=&to=
		r.With(h.requireAdmin).Post("/transactions/{id}/refund", h.refund)
	})
}

func (h *Handler) settle(w http.ResponseWriter, r *http.Request) {
	var req SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	t, err := h.service.Settle(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, t)
}

func (h *Handler) getTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, t)
}

func (h *Handler) getByInvoice(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.GetByInvoice(r.Context(), chi.URLParam(r, "invoice"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, t)
}

func (h *Handler) listByShift(w http.ResponseWriter, r *http.Request) {
	txs, err := h.service.ListByShift(r.Context(), chi.URLParam(r, "shift_id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, txs)
}

func (h *Handler) listRange(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	txs, err := h.service.ListRange(r.Context(), from, to)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, txs)
}

func (h *Handler) refund(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.Refund(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, t)
}

// parseRange reads from/to as YYYY-MM-DD dates; to is inclusive, so the
// query upper bound is the start of the following day.
func parseRange(r *http.Request) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("from must be YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("to must be YYYY-MM-DD")
	}
	return from, to.AddDate(0, 0, 1), nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrShiftNotOpen), errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrNotRefundable), errors.Is(err, ErrDuplicateInvoice):
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
