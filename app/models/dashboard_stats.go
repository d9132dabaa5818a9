package models

import "github.com/shopspring/decimal"

// DashboardStats mirrors the dashboard_stats view.
type DashboardStats struct {
	TotalUsers      int64           `json:"total_users"`
	TotalBooks      int64           `json:"total_books"`
	TotalOrders     int64           `json:"total_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalCategories int64           `json:"total_categories"`
	ActiveBanners   int64           `json:"active_banners"`
}

func (DashboardStats) TableName() string {
	return "dashboard_stats"
}
