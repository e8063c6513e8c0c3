package models

import "time"

// Product is a farm good listed by a user. Owner fields are copied from the
// user at creation time.
type Product struct {
	ID            int       `json:"id"`
	OwnerUsername string    `json:"owner_username"`
	OwnerEmail    string    `json:"owner_email"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         string    `json:"price"`
	Category      string    `json:"category"`
	Quantity      string    `json:"quantity"`
	BasePrice     string    `json:"base_price"`
	Image         string    `json:"image"`
	Available     bool      `json:"available"`
	CreatedAt     time.Time `json:"created_at"`
}

type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Quantity    string `json:"quantity"`
	BasePrice   string `json:"base_price"`
	Image       string `json:"image"`
	Available   bool   `json:"available"`
}
