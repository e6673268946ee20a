//revive:disable-next-line:var-naming // legacy package name used across the project
package model

// CriticalStock marks low-stock rows that need immediate attention.
const CriticalStock = 3

// TopSellingProduct is a dashboard best-seller row.
type TopSellingProduct struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	TotalSold int    `json:"total_sold"`
}

// LowStockProduct is a dashboard low-stock row.
type LowStockProduct struct {
	ID           int64  `json:"id"`
	ProductTitle string `json:"product_title"`
	SKU          string `json:"sku"`
	Stock        int    `json:"stock"`
}

// Critical reports whether stock is at or below CriticalStock.
func (l LowStockProduct) Critical() bool { return l.Stock <= CriticalStock }

// DashboardStats is the summary shown on the landing page.
type DashboardStats struct {
	TotalOrders        int                 `json:"total_orders"`
	TotalCustomers     int                 `json:"total_customers"`
	TodaysOrders       int                 `json:"todays_orders"`
	TotalProducts      int                 `json:"total_products"`
	TopSellingProducts []TopSellingProduct `json:"top_selling_products"`
	LowStockProducts   []LowStockProduct   `json:"low_stock_products"`
}
