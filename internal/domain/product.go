package domain

import "time"

type Product struct {
	ID          int64     `json:"product_id"`
	Name        string    `json:"name"`
	Price       Money     `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
