package report

import (
	"math"
	"sort"
	"time"
)

// BuildDailySales buckets sales per calendar day over [from, to] inclusive.
// Every day in the range gets a bucket, zeroed when nothing sold, so charts
// never have gaps.
func BuildDailySales(sales []SettledSale, from, to time.Time) []DailySales {
	from = from.Truncate(24 * time.Hour)
	to = to.Truncate(24 * time.Hour)

	byDay := make(map[string]*DailySales)
	var days []DailySales
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, DailySales{Date: d.Format("2006-01-02")})
	}
	for i := range days {
		byDay[days[i].Date] = &days[i]
	}

	for _, s := range sales {
		day, ok := byDay[s.CreatedAt.Format("2006-01-02")]
		if !ok {
			continue
		}
		day.Transactions++
		day.Revenue += s.Total
	}
	return days
}

// BuildPaymentBreakdown groups sales by payment method, sorted by
// transaction count descending. Percent is the method's share of the
// transaction count, rounded to the nearest whole percent.
func BuildPaymentBreakdown(sales []SettledSale) []PaymentBreakdown {
	byMethod := make(map[string]*PaymentBreakdown)
	for _, s := range sales {
		b, ok := byMethod[s.PaymentMethod]
		if !ok {
			b = &PaymentBreakdown{Method: s.PaymentMethod}
			byMethod[s.PaymentMethod] = b
		}
		b.Transactions++
		b.Revenue += s.Total
	}

	breakdown := make([]PaymentBreakdown, 0, len(byMethod))
	for _, b := range byMethod {
		b.Percent = int(math.Round(float64(b.Transactions) / float64(len(sales)) * 100))
		breakdown = append(breakdown, *b)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Transactions != breakdown[j].Transactions {
			return breakdown[i].Transactions > breakdown[j].Transactions
		}
		return breakdown[i].Method < breakdown[j].Method
	})
	return breakdown
}

// BuildTopProducts ranks products by quantity sold, keyed by the
// snapshotted name, and returns at most limit entries.
func BuildTopProducts(items []SoldItem, limit int) []TopProduct {
	byName := make(map[string]*TopProduct)
	for _, item := range items {
		p, ok := byName[item.ProductName]
		if !ok {
			p = &TopProduct{ProductName: item.ProductName}
			byName[item.ProductName] = p
		}
		p.QtySold += item.Qty
		p.Revenue += item.Subtotal
	}

	products := make([]TopProduct, 0, len(byName))
	for _, p := range byName {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].QtySold != products[j].QtySold {
			return products[i].QtySold > products[j].QtySold
		}
		return products[i].ProductName < products[j].ProductName
	})
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products
}

// BuildSummary totals the range. Average is rounded to the nearest Rupiah
// and zero when there were no sales.
func BuildSummary(sales []SettledSale) Summary {
	s := Summary{Transactions: len(sales)}
	for _, sale := range sales {
		s.Revenue += sale.Total
	}
	if s.Transactions > 0 {
		s.AvgPerSale = int64(math.Round(float64(s.Revenue) / float64(s.Transactions)))
	}
	return s
}
