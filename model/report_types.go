package model

// TimeBucket selects the granularity of the sales chart.
type TimeBucket string

const (
	BucketDay   TimeBucket = "Day"
	BucketMonth TimeBucket = "Month"
	BucketYear  TimeBucket = "Year"
)

// SalesBucket is one point of the dashboard chart. The Sales key is
// capitalized on the wire because the chart component binds to it by name.
type SalesBucket struct {
	Name  string  `json:"name"`
	Sales float64 `json:"Sales"`
}

// Totals are the aggregate figures shown under the dashboard table.
// CashTotal and UPITotal match payment_mode exactly ("CASH"/"UPI");
// differently cased records count toward TotalSales only.
type Totals struct {
	Count      int     `json:"count"`
	TotalSales float64 `json:"totalSales"`
	CashTotal  float64 `json:"cashTotal"`
	UPITotal   float64 `json:"upiTotal"`
}

// ProfitLine is the per-cart-line profit breakdown. Half and full variants of
// the same dish are separate lines.
type ProfitLine struct {
	Name          string  `json:"name"`
	QtySold       float64 `json:"qtySold"`
	SellingPrice  float64 `json:"sellingPrice"`
	PurchasePrice float64 `json:"purchasePrice"`
	TotalProfit   float64 `json:"totalProfit"`
}

// ProfitReport is the full profit breakdown for a hotel and date range.
type ProfitReport struct {
	Items       []ProfitLine `json:"itemProfits"`
	TotalProfit float64      `json:"totalProfit"`
}

// StockSummaryRow is one row of the stock reconciliation report, derived from
// a dated snapshot: added is the morning stock, sold the adjusted-out stock.
type StockSummaryRow struct {
	ID        string  `json:"id"`
	Name      string  `json:"submenu"`
	Added     float64 `json:"added"`
	Sold      float64 `json:"sold"`
	Available float64 `json:"available"`
}
