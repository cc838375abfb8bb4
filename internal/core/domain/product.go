package domain

import "time"

type Product struct {
	ID          ID
	Name        string
	Description string
	Price       Amount
	Stock       int
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewProduct(name string, description string, price Amount, stock int, image string) *Product {
	now := time.Now()
	return &Product{
		ID:          NewID(),
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Image:       image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
