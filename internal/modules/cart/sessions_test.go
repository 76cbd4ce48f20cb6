package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionsIsolatePerTerminal(t *testing.T) {
	s := NewSessions(0)
	p := product("Gula", 14000)

	s.Do("till-1", func(c *Cart) { c.AddItem(p, 1) })
	s.Do("till-2", func(c *Cart) { c.AddItem(p, 5) })

	assert.Equal(t, int64(14000), s.Totals("till-1").Total)
	assert.Equal(t, int64(70000), s.Totals("till-2").Total)
}

func TestSessionsCreateCartOnFirstUse(t *testing.T) {
	s := NewSessions(11)
	totals := s.Totals("till-9")

	assert.Empty(t, totals.Lines)
	assert.Equal(t, 11.0, totals.TaxRatePercent)
}

func TestDropDestroysCart(t *testing.T) {
	s := NewSessions(0)
	s.Do("till-1", func(c *Cart) { c.AddItem(product("Teh", 5000), 2) })

	s.Drop("till-1")

	assert.Empty(t, s.Totals("till-1").Lines)
}

func TestConcurrentMutationsOnOneTerminal(t *testing.T) {
	s := NewSessions(0)
	p := product("Kerupuk", 1000)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Do("till-1", func(c *Cart) { c.AddItem(p, 1) })
		}()
	}
	wg.Wait()

	totals := s.Totals("till-1")
	require.Len(t, totals.Lines, 1)
	assert.Equal(t, 50, totals.Lines[0].Qty)
	assert.Equal(t, int64(50000), totals.Total)
}
