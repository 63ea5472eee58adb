package domain

import "time"

// CartLine is one (user, product) row of a cart. Quantity is always >= 1.
type CartLine struct {
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// CartItem is a cart line joined with the current product data for display.
type CartItem struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Name      string `json:"name"`
	Price     Money  `json:"price"`
	Image     string `json:"image"`
}
