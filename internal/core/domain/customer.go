package domain

// Customer aggregates order counts per email; email is the dedup key.
type Customer struct {
	ID          ID
	Name        string
	Email       string
	TotalOrders int
}

func NewCustomer(name string, email string) *Customer {
	return &Customer{
		ID:          NewID(),
		Name:        name,
		Email:       email,
		TotalOrders: 1,
	}
}
