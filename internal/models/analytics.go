package models

// DailyStats is one day of order volume and revenue
type DailyStats struct {
	Date    string `json:"date"`
	Orders  int    `json:"orders"`
	Revenue int64  `json:"revenue"`
}

// PopularItem is a menu item ranked by how many orders included it
type PopularItem struct {
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	OrderCount int    `json:"orderCount"`
}

// TableStats is the order count for one table
type TableStats struct {
	TableID    int `json:"tableId"`
	OrderCount int `json:"orderCount"`
}

// AnalyticsSummary is the payload of the analytics endpoint
type AnalyticsSummary struct {
	Daily        []DailyStats  `json:"daily"`
	PopularItems []PopularItem `json:"popularItems"`
	TableStats   []TableStats  `json:"tableStats"`
	TotalOrders  int           `json:"totalOrders"`
	TotalRevenue int64         `json:"totalRevenue"`
}
