package model

import "time"

// OrderItem is a single line of an order.
type OrderItem struct {
	ID            int64
	OrderID       int64
	Name          string
	Quantity      int
	UnitPrice     float64
	Customization string
}

// Order describes a cake order moving through the fulfillment lifecycle.
// ShopID is zero when the legacy backend never recorded the fulfilling shop.
type Order struct {
	ID            int64
	Number        string
	CustomerID    int64
	CustomerEmail string
	CustomerName  string
	ShopID        int64
	PostID        *int64
	Status        OrderStatus
	BasePrice     float64
	AddonTotal    float64
	TotalPrice    float64
	Size          string
	Instructions  string
	Items         []OrderItem
	CreatedAt     time.Time
	ShippedAt     *time.Time
	UpdatedAt     time.Time
}

// ResolvePrices fills whichever of base/total price is missing from the other
// and the add-on total. Both present leaves the order untouched.
func (o *Order) ResolvePrices() {
	switch {
	case o.TotalPrice == 0 && o.BasePrice != 0:
		o.TotalPrice = o.BasePrice + o.AddonTotal
	case o.BasePrice == 0 && o.TotalPrice != 0:
		o.BasePrice = o.TotalPrice - o.AddonTotal
	}
}
