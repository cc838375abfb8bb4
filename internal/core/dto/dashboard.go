package dto

type SalesPoint struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

type DashboardSummary struct {
	TotalRevenue   float64      `json:"totalRevenue"`
	TotalOrders    int          `json:"totalOrders"`
	TotalCustomers int          `json:"totalCustomers"`
	TotalProducts  int          `json:"totalProducts"`
	RecentSales    []SalesPoint `json:"recentSales"`
}
