package models

// StatusCount is the number of orders in one status.
type StatusCount struct {
	Status OrderStatus `json:"status"`
	Count  int64       `json:"count"`
}

// MonthlyOrders aggregates orders placed in one calendar month (YYYY-MM).
type MonthlyOrders struct {
	Month      string  `json:"month"`
	OrderCount int     `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

// OrderStats backs the order dashboard.
type OrderStats struct {
	TotalOrders    int64           `json:"totalOrders"`
	OrdersByStatus []StatusCount   `json:"ordersByStatus"`
	RecentOrders   []OrderSummary  `json:"recentOrders"`
	MonthlyOrders  []MonthlyOrders `json:"monthlyOrders"`
}

// AdminStats holds the headline counters of the admin dashboard.
type AdminStats struct {
	TotalOrders    int64 `json:"totalOrders"`
	TotalProducts  int64 `json:"totalProducts"`
	TotalAdmins    int64 `json:"totalAdmins"`
	TotalCustomers int64 `json:"totalCustomers"`
}

// TopProduct is a catalog entry shown on the dashboard.
type TopProduct struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	SellPrice float64 `json:"sell_price"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// ProductSales is the ordered quantity of one item over a window.
type ProductSales struct {
	ItemID      string `json:"item_id"`
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
}

// UserRoleCounts splits active users by role.
type UserRoleCounts struct {
	Admins int64 `json:"admins"`
	Users  int64 `json:"users"`
}
