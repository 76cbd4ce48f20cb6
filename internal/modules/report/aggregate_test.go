package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBuildDailySalesZeroFillsEmptyDays(t *testing.T) {
	sales := []SettledSale{
		{Total: 35000, PaymentMethod: "cash", CreatedAt: day("2026-03-02").Add(9 * time.Hour)},
		{Total: 50500, PaymentMethod: "cash", CreatedAt: day("2026-03-02").Add(14 * time.Hour)},
		{Total: 12000, PaymentMethod: "qris", CreatedAt: day("2026-03-04").Add(10 * time.Hour)},
	}

	days := BuildDailySales(sales, day("2026-03-01"), day("2026-03-04"))
	require.Len(t, days, 4)

	assert.Equal(t, DailySales{Date: "2026-03-01"}, days[0])
	assert.Equal(t, DailySales{Date: "2026-03-02", Transactions: 2, Revenue: 85500}, days[1])
	assert.Equal(t, DailySales{Date: "2026-03-03"}, days[2])
	assert.Equal(t, DailySales{Date: "2026-03-04", Transactions: 1, Revenue: 12000}, days[3])
}

func TestBuildDailySalesSingleDay(t *testing.T) {
	days := BuildDailySales(nil, day("2026-03-01"), day("2026-03-01"))
	require.Len(t, days, 1)
	assert.Equal(t, "2026-03-01", days[0].Date)
}

func TestBuildPaymentBreakdownSortsByCount(t *testing.T) {
	sales := []SettledSale{
		{Total: 10000, PaymentMethod: "qris"},
		{Total: 20000, PaymentMethod: "cash"},
		{Total: 30000, PaymentMethod: "cash"},
		{Total: 40000, PaymentMethod: "cash"},
	}

	breakdown := BuildPaymentBreakdown(sales)
	require.Len(t, breakdown, 2)

	assert.Equal(t, "cash", breakdown[0].Method)
	assert.Equal(t, 3, breakdown[0].Transactions)
	assert.Equal(t, int64(90000), breakdown[0].Revenue)
	assert.Equal(t, 75, breakdown[0].Percent)

	assert.Equal(t, "qris", breakdown[1].Method)
	assert.Equal(t, 25, breakdown[1].Percent)
}

func TestBuildPaymentBreakdownEmpty(t *testing.T) {
	assert.Empty(t, BuildPaymentBreakdown(nil))
}

func TestBuildTopProductsAggregatesByName(t *testing.T) {
	items := []SoldItem{
		{ProductName: "Indomie Goreng", Qty: 5, Subtotal: 50000},
		{ProductName: "Teh Botol", Qty: 2, Subtotal: 30000},
		{ProductName: "Indomie Goreng", Qty: 3, Subtotal: 30000},
	}

	top := BuildTopProducts(items, 10)
	require.Len(t, top, 2)
	assert.Equal(t, TopProduct{ProductName: "Indomie Goreng", QtySold: 8, Revenue: 80000}, top[0])
	assert.Equal(t, TopProduct{ProductName: "Teh Botol", QtySold: 2, Revenue: 30000}, top[1])
}

func TestBuildTopProductsHonorsLimit(t *testing.T) {
	items := []SoldItem{
		{ProductName: "A", Qty: 3, Subtotal: 300},
		{ProductName: "B", Qty: 2, Subtotal: 200},
		{ProductName: "C", Qty: 1, Subtotal: 100},
	}

	top := BuildTopProducts(items, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "A", top[0].ProductName)
	assert.Equal(t, "B", top[1].ProductName)
}

func TestBuildSummary(t *testing.T) {
	sales := []SettledSale{
		{Total: 35000},
		{Total: 50500},
	}

	s := BuildSummary(sales)
	assert.Equal(t, 2, s.Transactions)
	assert.Equal(t, int64(85500), s.Revenue)
	assert.Equal(t, int64(42750), s.AvgPerSale)
}

func TestBuildSummaryRoundsAverage(t *testing.T) {
	s := BuildSummary([]SettledSale{{Total: 100}, {Total: 101}, {Total: 100}})
	// 301/3 = 100.33..., rounds to 100.
	assert.Equal(t, int64(100), s.AvgPerSale)
}

func TestBuildSummaryEmptyRange(t *testing.T) {
	s := BuildSummary(nil)
	assert.Equal(t, Summary{}, s)
}

func TestAggregationIsDeterministic(t *testing.T) {
	sales := []SettledSale{
		{Total: 10000, PaymentMethod: "cash", CreatedAt: day("2026-03-01")},
		{Total: 20000, PaymentMethod: "qris", CreatedAt: day("2026-03-01")},
		{Total: 15000, PaymentMethod: "bank", CreatedAt: day("2026-03-02")},
	}

	first := BuildPaymentBreakdown(sales)
	second := BuildPaymentBreakdown(sales)
	assert.Equal(t, first, second)

	assert.Equal(t, BuildSummary(sales), BuildSummary(sales))
	assert.Equal(t,
		BuildDailySales(sales, day("2026-03-01"), day("2026-03-02")),
		BuildDailySales(sales, day("2026-03-01"), day("2026-03-02")))
}
