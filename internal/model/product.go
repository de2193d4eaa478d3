package model

import "time"

// Product represents one item in the merch shop.  Sizes is only meaningful
// for apparel and is stored as a JSON array in the DB.  Inactive products
// stay in the table but disappear from the shop and the sitemap.  This
// struct corresponds to a row in the `products` table.
//
// Fields:
//
//	ID          – primary key identifier.
//	Name        – product name.
//	Description – short description shown in the shop grid.
//	Details     – optional long description for the product page.
//	Price       – unit price.
//	Category    – "apparel", "music" or "accessories".
//	Sizes       – available sizes for apparel, empty otherwise.
//	Stock       – units in stock.
//	Active      – whether the product is for sale.
//	CreatedAt   – creation timestamp.
//	UpdatedAt   – last update timestamp.
type Product struct {
	ID          uint64    `json:"id"`              // products.id
	Name        string    `json:"name"`            // products.name
	Description string    `json:"description"`     // products.description
	Details     *string   `json:"details"`         // products.details (nullable)
	Price       float64   `json:"price"`           // products.price
	Category    string    `json:"category"`        // products.category
	Sizes       []string  `json:"sizes,omitempty"` // products.sizes (JSON column)
	Stock       int       `json:"stock"`           // products.stock
	Active      bool      `json:"active"`          // products.active
	CreatedAt   time.Time `json:"created_at"`      // products.created_at
	UpdatedAt   time.Time `json:"updated_at"`      // products.updated_at
}
