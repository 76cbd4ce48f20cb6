package cart

import "sync"

// Sessions holds the live cart for each terminal. Carts are ephemeral and
// process-local: created on first use, destroyed on checkout or explicit
// clear. Each session owns its own cart; there is no shared global cart.
type Sessions struct {
	mu      sync.Mutex
	carts   map[string]*Cart
	taxRate float64
}

// NewSessions creates an empty session registry. New carts snapshot the
// given store-wide tax rate (percent).
func NewSessions(taxRatePercent float64) *Sessions {
	return &Sessions{
		carts:   make(map[string]*Cart),
		taxRate: taxRatePercent,
	}
}

// Do runs fn against the terminal's cart under the registry lock, creating
// the cart on first use, and returns the resulting totals. Cart mutations
// within one terminal are strictly ordered by this lock.
func (s *Sessions) Do(terminalID string, fn func(c *Cart)) Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[terminalID]
	if !ok {
		c = New(s.taxRate)
		s.carts[terminalID] = c
	}
	if fn != nil {
		fn(c)
	}
	return c.Totals()
}

// Totals returns the terminal's current priced cart without mutating it.
func (s *Sessions) Totals(terminalID string) Totals {
	return s.Do(terminalID, nil)
}

// Drop destroys the terminal's cart, if any. Called after a successful
// settlement or an explicit abandon.
func (s *Sessions) Drop(terminalID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, terminalID)
}
