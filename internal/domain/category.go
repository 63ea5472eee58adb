package domain

import "time"

type Category struct {
	ID        int64     `json:"category_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
