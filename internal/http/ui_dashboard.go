package httpx

import (
	"context"
	"net/http"

	"github.com/target/storefront-admin/internal/domain/model"
)

const errMsgUnableLoadDashboard = "Unable to load dashboard statistics"

// dashboardCard is one of the summary tiles at the top of the dashboard.
type dashboardCard struct {
	Label string
	Value int
	Href  string
}

func dashboardCards(stats model.DashboardStats) []dashboardCard {
	return []dashboardCard{
		{Label: "Total Orders", Value: stats.TotalOrders, Href: "/orders"},
		{Label: "Total Customers", Value: stats.TotalCustomers, Href: "/users"},
		{Label: "Today's Orders", Value: stats.TodaysOrders, Href: "/orders"},
		{Label: "Active Products", Value: stats.TotalProducts, Href: "/products"},
	}
}

// Index serves the home page with dashboard content.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta:         PageMeta{Title: "Dashboard", PageTitle: "Dashboard", CurrentPage: PageDashboard},
		ErrorMessage: errMsgUnableLoadDashboard,
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["Cards"] = dashboardCards(model.DashboardStats{})
			data["CriticalStock"] = model.CriticalStock

			stats, err := h.catalog(r).Dashboard(ctx)
			if err != nil {
				return err
			}
			data["Stats"] = stats
			data["Cards"] = dashboardCards(stats)
			data["TopSelling"] = stats.TopSellingProducts
			data["LowStock"] = stats.LowStockProducts
			return nil
		},
	})
}
