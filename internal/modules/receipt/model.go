package receipt

import "time"

// Receipt is the render-ready payload for a settled transaction. It carries
// everything a printer or display client needs, so clients never join data
// themselves.
type Receipt struct {
	StoreName    string `json:"store_name"`
	StoreAddress string `json:"store_address,omitempty"`
	StorePhone   string `json:"store_phone,omitempty"`

	InvoiceNumber string    `json:"invoice_number"`
	CashierName   string    `json:"cashier_name"`
	IssuedAt      time.Time `json:"issued_at"`

	Lines []ReceiptLine `json:"lines"`

	Subtotal      int64  `json:"subtotal"`
	Discount      int64  `json:"discount"`
	Tax           int64  `json:"tax"`
	Total         int64  `json:"total"`
	PaymentMethod string `json:"payment_method"`
	Paid          int64  `json:"paid"`
	Change        int64  `json:"change"`
	Notes         string `json:"notes,omitempty"`
}

// ReceiptLine is one printed item row.
type ReceiptLine struct {
	ProductName string `json:"product_name"`
	Qty         int    `json:"qty"`
	UnitPrice   int64  `json:"unit_price"`
	Discount    int64  `json:"discount,omitempty"`
	Subtotal    int64  `json:"subtotal"`
}

// StoreInfo is the static header printed on every receipt.
type StoreInfo struct {
	Name    string
	Address string
	Phone   string
}
