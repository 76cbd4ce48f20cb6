package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/adiwijaya/warungpos-backend/internal/modules/catalog"
	"github.com/adiwijaya/warungpos-backend/internal/modules/customer"
	"github.com/adiwijaya/warungpos-backend/internal/modules/sales"
	"github.com/adiwijaya/warungpos-backend/internal/modules/shift"
)

var (
	ErrNoOpenShift     = errors.New("cashier has no open shift")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrStockTooLow     = errors.New("requested quantity exceeds stock on hand")
	ErrUnknownDiscount = errors.New("discount kind must be percent or fixed")
)

// ProductCatalog is the slice of the catalog service the cart needs.
type ProductCatalog interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
}

// ShiftGate answers whether a cashier currently has an open shift.
type ShiftGate interface {
	GetActiveShift(ctx context.Context, cashierID string) (*shift.Shift, error)
}

// CustomerDirectory validates customer references before attaching them.
type CustomerDirectory interface {
	GetCustomer(ctx context.Context, id string) (*customer.Customer, error)
}

// Settler finalizes a priced cart into a transaction.
type Settler interface {
	Settle(ctx context.Context, req sales.SettleRequest) (*sales.Transaction, error)
}

// Handler exposes the cart and checkout HTTP endpoints. The cart is
// process-local state keyed by terminal id; only checkout touches the
// database.
type Handler struct {
	sessions  *Sessions
	products  ProductCatalog
	shifts    ShiftGate
	customers CustomerDirectory
	settler   Settler
}

func NewHandler(sessions *Sessions, products ProductCatalog, shifts ShiftGate, customers CustomerDirectory, settler Settler) *Handler {
	return &Handler{
		sessions:  sessions,
		products:  products,
		shifts:    shifts,
		customers: customers,
		settler:   settler,
	}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/cart/{terminal_id}", func(r chi.Router) {
		r.Get("/", h.getCart)                                  // GET    /api/v1/cart/{tid}
		r.Post("/items", h.addItem)                            // POST   /api/v1/cart/{tid}/items
		r.Put("/items/{product_id}", h.updateQuantity)         // PUT    /api/v1/cart/{tid}/items/{pid}
		r.Delete("/items/{product_id}", h.removeItem)          // DELETE /api/v1/cart/{tid}/items/{pid}
		r.Put("/items/{product_id}/discount", h.itemDiscount)  // PUT    /api/v1/cart/{tid}/items/{pid}/discount
		r.Put("/discount", h.cartDiscount)                     // PUT    /api/v1/cart/{tid}/discount
		r.Put("/customer", h.setCustomer)                      // PUT    /api/v1/cart/{tid}/customer
		r.Put("/notes", h.setNotes)                            // PUT    /api/v1/cart/{tid}/notes
		r.Delete("/", h.clearCart)                             // DELETE /api/v1/cart/{tid}
	})
	r.Post("/api/v1/pos/checkout", h.checkout)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.sessions.Totals(chi.URLParam(r, "terminal_id")))
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// Items can only be rung up against an open shift.
	sh, err := h.shifts.GetActiveShift(r.Context(), req.CashierID)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if sh == nil {
		respond(w, http.StatusConflict, map[string]string{"error": ErrNoOpenShift.Error()})
		return
	}

	p, err := h.products.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, catalog.ErrProductNotFound) {
			status = http.StatusNotFound
		}
		respond(w, status, map[string]string{"error": err.Error()})
		return
	}

	qty := req.Qty
	if qty < 1 {
		qty = 1
	}
	snapshot := ProductSnapshot{ID: p.ID, Name: p.Name, SellPrice: p.SellPrice, Stock: p.Stock}

	terminalID := chi.URLParam(r, "terminal_id")
	var stockErr error
	totals := h.sessions.Do(terminalID, func(c *Cart) {
		// Advisory check against the snapshot; settlement re-checks
		// against live stock.
		have := 0
		if l := c.find(p.ID); l != nil {
			have = l.Qty
		}
		if have+qty > p.Stock {
			stockErr = fmt.Errorf("%w: %s", ErrStockTooLow, p.Name)
			return
		}
		c.AddItem(snapshot, qty)
	})
	if stockErr != nil {
		respond(w, http.StatusConflict, map[string]string{"error": stockErr.Error()})
		return
	}
	respond(w, http.StatusOK, totals)
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	productID, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid product_id"})
		return
	}
	totals := h.sessions.Do(chi.URLParam(r, "terminal_id"), func(c *Cart) {
		c.UpdateQuantity(productID, req.Qty)
	})
	respond(w, http.StatusOK, totals)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid product_id"})
		return
	}
	totals := h.sessions.Do(chi.URLParam(r, "terminal_id"), func(c *Cart) {
		c.RemoveItem(productID)
	})
	respond(w, http.StatusOK, totals)
}

func (h *Handler) itemDiscount(w http.ResponseWriter, r *http.Request) {
	var req DiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	d, err := discountFrom(req)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	productID, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid product_id"})
		return
	}
	totals := h.sessions.Do(chi.URLParam(r, "terminal_id"), func(c *Cart) {
		c.SetItemDiscount(productID, d)
	})
	respond(w, http.StatusOK, totals)
}

func (h *Handler) cartDiscount(w http.ResponseWriter, r *http.Request) {
	var req DiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	d, err := discountFrom(req)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	totals := h.sessions.Do(chi.URLParam(r, "terminal_id"), func(c *Cart) {
		c.SetCartDiscount(d)
	})
	respond(w, http.StatusOK, totals)
}

func (h *Handler) setCustomer(w http.ResponseWriter, r *http.Request) {
	var req SetCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var customerID *uuid.UUID
	if req.CustomerID != "" {
		c, err := h.customers.GetCustomer(r.Context(), req.CustomerID)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, customer.ErrCustomerNotFound) {
				status = http.StatusNotFound
			}
			respond(w, status, map[string]string{"error": err.Error()})
			return
		}
		customerID = &c.ID
	}
	totals := h.sessions.Do(chi.URLParam(r, "terminal_id"), func(c *Cart) {
		c.SetCustomer(customerID)
	})
	respond(w, http.StatusOK, totals)
}

func (h *Handler) setNotes(w http.ResponseWriter, r *http.Request) {
	var req SetNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	totals := h.sessions.Do(chi.URLParam(r, "terminal_id"), func(c *Cart) {
		c.SetNotes(req.Notes)
	})
	respond(w, http.StatusOK, totals)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	totals := h.sessions.Do(chi.URLParam(r, "terminal_id"), func(c *Cart) {
		c.Clear()
	})
	respond(w, http.StatusOK, totals)
}

// CheckoutRequest finalizes a terminal's cart into a settled transaction.
type CheckoutRequest struct {
	TerminalID    string `json:"terminal_id"`
	CashierID     string `json:"cashier_id"`
	PaymentMethod string `json:"payment_method"`
	Paid          int64  `json:"paid"`
}

// checkout prices the live cart, settles it, and drops the session only
// after the settlement committed. A failed settlement leaves the cart
// intact so the cashier can retry or adjust.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sh, err := h.shifts.GetActiveShift(r.Context(), req.CashierID)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if sh == nil {
		respond(w, http.StatusConflict, map[string]string{"error": ErrNoOpenShift.Error()})
		return
	}

	totals := h.sessions.Totals(req.TerminalID)
	if len(totals.Lines) == 0 {
		respond(w, http.StatusBadRequest, map[string]string{"error": ErrEmptyCart.Error()})
		return
	}

	settleReq := sales.SettleRequest{
		CashierID:     req.CashierID,
		ShiftID:       sh.ID.String(),
		Subtotal:      totals.Subtotal,
		Discount:      totals.ItemsDiscount + totals.CartDiscount,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: req.PaymentMethod,
		Paid:          req.Paid,
		Notes:         totals.Notes,
	}
	if totals.CustomerID != nil {
		settleReq.CustomerID = totals.CustomerID.String()
	}
	for _, l := range totals.Lines {
		discount := l.Discount.Apply(l.Subtotal(), l.Qty)
		settleReq.Items = append(settleReq.Items, sales.SettleItem{
			ProductID:   l.ProductID.String(),
			ProductName: l.Name,
			Qty:         l.Qty,
			UnitPrice:   l.UnitPrice,
			Discount:    discount,
			Subtotal:    l.Subtotal() - discount,
		})
	}

	t, err := h.settler.Settle(r.Context(), settleReq)
	if err != nil {
		respond(w, settleStatus(err), map[string]string{"error": err.Error()})
		return
	}

	h.sessions.Drop(req.TerminalID)
	respond(w, http.StatusCreated, t)
}

func settleStatus(err error) int {
	switch {
	case errors.Is(err, sales.ErrShiftNotOpen),
		errors.Is(err, sales.ErrInsufficientStock):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func discountFrom(req DiscountRequest) (Discount, error) {
	switch DiscountKind(req.Kind) {
	case DiscountNone:
		return Discount{}, nil
	case DiscountPercent:
		if req.Percent < 0 || req.Percent > 100 {
			return Discount{}, fmt.Errorf("percent must be between 0 and 100")
		}
		return PercentDiscount(req.Percent), nil
	case DiscountFixed:
		if req.Amount < 0 {
			return Discount{}, fmt.Errorf("amount cannot be negative")
		}
		return FixedDiscount(req.Amount), nil
	default:
		return Discount{}, ErrUnknownDiscount
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
