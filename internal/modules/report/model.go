package report

import "time"

// SettledSale is the slice of a transaction the aggregator needs. Only
// status=success rows feed reports: refunds and cancellations are excluded
// at the query.
type SettledSale struct {
	Total         int64
	PaymentMethod string
	CreatedAt     time.Time
}

// SoldItem is one settled line feeding the top-products ranking. Keyed by
// the snapshotted name so sales of deleted products still count.
type SoldItem struct {
	ProductName string
	Qty         int
	Subtotal    int64
}

// DailySales is one day's bucket. Days with no sales appear with zeros.
type DailySales struct {
	Date         string `json:"date"`
	Transactions int    `json:"transactions"`
	Revenue      int64  `json:"revenue"`
}

// PaymentBreakdown is one payment method's share of the range.
type PaymentBreakdown struct {
	Method       string `json:"method"`
	Transactions int    `json:"transactions"`
	Revenue      int64  `json:"revenue"`
	Percent      int    `json:"percent"`
}

// TopProduct is one ranked product by quantity sold.
type TopProduct struct {
	ProductName string `json:"product_name"`
	QtySold     int    `json:"qty_sold"`
	Revenue     int64  `json:"revenue"`
}

// Summary is the headline figures for a range.
type Summary struct {
	Transactions int   `json:"transactions"`
	Revenue      int64 `json:"revenue"`
	AvgPerSale   int64 `json:"avg_per_sale"`
}
