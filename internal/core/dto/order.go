package dto

type OrderItem struct {
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unitPrice"`
	Currency  string  `json:"currency"`
	Quantity  int     `json:"quantity"`
}

type OrderCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateOrderRequest struct {
	Items    []OrderItem   `json:"items"`
	Customer OrderCustomer `json:"customer"`
}
